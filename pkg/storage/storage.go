package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Catégories de rangement des fichiers téléversés
const (
	CategorieRapports = "rapports"
	CategorieLettres  = "lettres_acceptation"
)

// FileStorage frontière de stockage des fichiers : le cœur métier ne valide
// que les métadonnées (nom, taille), jamais le mécanisme de stockage.
type FileStorage interface {
	// Save enregistre le flux sous la catégorie donnée et retourne la
	// référence relative du fichier (catégorie/nom-unique.ext).
	Save(category, filename string, r io.Reader) (string, error)
	// Open ouvre un fichier précédemment enregistré.
	Open(ref string) (io.ReadCloser, error)
	// Remove supprime un fichier ; l'absence n'est pas une erreur.
	Remove(ref string) error
}

// LocalStorage implémentation sur disque local
type LocalStorage struct {
	root string
}

// NewLocalStorage crée les sous-dossiers de catégories sous root
func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, cat := range []string{CategorieRapports, CategorieLettres} {
		if err := os.MkdirAll(filepath.Join(root, cat), 0o755); err != nil {
			return nil, fmt.Errorf("création du dossier %s: %w", cat, err)
		}
	}
	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) Save(category, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	ref := filepath.ToSlash(filepath.Join(category, name))

	f, err := os.Create(filepath.Join(s.root, category, name))
	if err != nil {
		return "", fmt.Errorf("création du fichier: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("écriture du fichier: %w", err)
	}

	return ref, nil
}

func (s *LocalStorage) Open(ref string) (io.ReadCloser, error) {
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("référence de fichier invalide: %s", ref)
	}
	return os.Open(filepath.Join(s.root, clean))
}

func (s *LocalStorage) Remove(ref string) error {
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("référence de fichier invalide: %s", ref)
	}
	err := os.Remove(filepath.Join(s.root, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
