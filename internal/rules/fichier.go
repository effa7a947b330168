package rules

import (
	"strconv"
	"strings"

	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

// Contraintes sur les fichiers téléversés
const (
	TailleMaxRapport = 15 * 1024 * 1024 // 15 Mio
	TailleMaxLettre  = 10 * 1024 * 1024 // 10 Mio
)

var (
	// FormatsRapportAutorises extensions admises pour le fichier d'un rapport
	FormatsRapportAutorises = []string{".pdf", ".doc", ".docx", ".odt"}
	// FormatsLettreAutorises extensions admises pour une lettre d'acceptation
	FormatsLettreAutorises = []string{".pdf", ".jpg", ".jpeg", ".png"}
)

// ValiderFichierRapport contrôle l'extension (insensible à la casse) et la
// taille du fichier d'un rapport. La taille limite est incluse : un fichier de
// 15 Mio exactement passe. Les erreurs sont indexées sur le champ "fichier".
func ValiderFichierRapport(nom string, taille int64) apperrors.FieldErrors {
	return validerFichier("fichier", nom, taille, FormatsRapportAutorises, TailleMaxRapport)
}

// ValiderLettreAcceptation contrôle le fichier d'une lettre d'acceptation,
// indexé sur le champ "lettre_acceptation".
func ValiderLettreAcceptation(nom string, taille int64) apperrors.FieldErrors {
	return validerFichier("lettre_acceptation", nom, taille, FormatsLettreAutorises, TailleMaxLettre)
}

func validerFichier(champ, nom string, taille int64, formats []string, tailleMax int64) apperrors.FieldErrors {
	errs := apperrors.NewFieldErrors()

	nomMinuscule := strings.ToLower(nom)
	formatValide := false
	for _, ext := range formats {
		if strings.HasSuffix(nomMinuscule, ext) {
			formatValide = true
			break
		}
	}
	if !formatValide {
		errs.Add(champ, "Format de fichier non autorisé. Formats acceptés: "+strings.Join(formats, ", "))
	}

	if taille > tailleMax {
		mo := strconv.FormatInt(tailleMax/(1024*1024), 10)
		errs.Add(champ, "Taille du fichier supérieure à "+mo+" Mo.")
	}

	return errs
}
