package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
)

// ── Assemblage pour les tests ──

type testMocks struct {
	stagiaires *mockStagiaireRepo
	encadrants *mockEncadrantRepo
	stages     *mockStageRepo
	rapports   *mockRapportRepo
	users      *mockUserRepo
	files      *mockFileStorage
}

func newTestRepo() (*repository.Repository, *testMocks) {
	mocks := &testMocks{
		stagiaires: newMockStagiaireRepo(),
		encadrants: newMockEncadrantRepo(),
		stages:     newMockStageRepo(),
		rapports:   newMockRapportRepo(),
		users:      newMockUserRepo(),
		files:      newMockFileStorage(),
	}
	repo := &repository.Repository{
		User:      mocks.users,
		Stagiaire: mocks.stagiaires,
		Encadrant: mocks.encadrants,
		Stage:     mocks.stages,
		Rapport:   mocks.rapports,
	}
	return repo, mocks
}

// ── Mock StagiaireRepository ──

type mockStagiaireRepo struct {
	stagiaires map[string]*model.Stagiaire
	sequence   int64
}

func newMockStagiaireRepo() *mockStagiaireRepo {
	return &mockStagiaireRepo{stagiaires: make(map[string]*model.Stagiaire)}
}

func (m *mockStagiaireRepo) Create(_ context.Context, st *model.Stagiaire) error {
	if st.StagiaireID == "" {
		st.StagiaireID = fmt.Sprintf("stg-%03d", len(m.stagiaires)+1)
	}
	m.stagiaires[st.StagiaireID] = st
	return nil
}

func (m *mockStagiaireRepo) GetByID(_ context.Context, id string) (*model.Stagiaire, error) {
	if st, ok := m.stagiaires[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStagiaireRepo) GetByMatricule(_ context.Context, matricule string) (*model.Stagiaire, error) {
	for _, st := range m.stagiaires {
		if st.Matricule == matricule {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStagiaireRepo) List(_ context.Context, req *dto.ListStagiairesRequest) ([]model.Stagiaire, int64, error) {
	var result []model.Stagiaire
	for _, st := range m.stagiaires {
		if req.NiveauEtude != "" && st.NiveauEtude != req.NiveauEtude {
			continue
		}
		if req.Recherche != "" && !strings.Contains(st.Nom, req.Recherche) &&
			!strings.Contains(st.Prenom, req.Recherche) &&
			!strings.Contains(st.Matricule, req.Recherche) {
			continue
		}
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StagiaireID < result[j].StagiaireID })
	return result, int64(len(result)), nil
}

func (m *mockStagiaireRepo) Update(_ context.Context, st *model.Stagiaire) error {
	m.stagiaires[st.StagiaireID] = st
	return nil
}

func (m *mockStagiaireRepo) Delete(_ context.Context, id string) error {
	delete(m.stagiaires, id)
	return nil
}

func (m *mockStagiaireRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for id, st := range m.stagiaires {
		if id != excludeID && strings.EqualFold(st.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStagiaireRepo) NextMatricule(_ context.Context) (int64, error) {
	m.sequence++
	return m.sequence, nil
}

func (m *mockStagiaireRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.stagiaires)), nil
}

// ── Mock EncadrantRepository ──

type mockEncadrantRepo struct {
	encadrants map[string]*model.Encadrant
	nbStages   map[string]int64
}

func newMockEncadrantRepo() *mockEncadrantRepo {
	return &mockEncadrantRepo{
		encadrants: make(map[string]*model.Encadrant),
		nbStages:   make(map[string]int64),
	}
}

func (m *mockEncadrantRepo) Create(_ context.Context, e *model.Encadrant) error {
	if e.EncadrantID == "" {
		e.EncadrantID = fmt.Sprintf("enc-%03d", len(m.encadrants)+1)
	}
	m.encadrants[e.EncadrantID] = e
	return nil
}

func (m *mockEncadrantRepo) GetByID(_ context.Context, id string) (*model.Encadrant, error) {
	if e, ok := m.encadrants[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEncadrantRepo) List(_ context.Context, req *dto.ListEncadrantsRequest) ([]model.Encadrant, int64, error) {
	var result []model.Encadrant
	for _, e := range m.encadrants {
		if req.Institution != "" && e.Institution != req.Institution {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EncadrantID < result[j].EncadrantID })
	return result, int64(len(result)), nil
}

func (m *mockEncadrantRepo) Update(_ context.Context, e *model.Encadrant) error {
	m.encadrants[e.EncadrantID] = e
	return nil
}

func (m *mockEncadrantRepo) Delete(_ context.Context, id string) error {
	delete(m.encadrants, id)
	return nil
}

func (m *mockEncadrantRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for id, e := range m.encadrants {
		if id != excludeID && strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEncadrantRepo) ExistsByTelephone(_ context.Context, telephone, excludeID string) (bool, error) {
	for id, e := range m.encadrants {
		if id != excludeID && e.Telephone == telephone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEncadrantRepo) CountStages(_ context.Context, encadrantID string) (int64, error) {
	return m.nbStages[encadrantID], nil
}

func (m *mockEncadrantRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.encadrants)), nil
}

// ── Mock StageRepository ──

type mockStageRepo struct {
	stages map[string]*model.Stage
}

func newMockStageRepo() *mockStageRepo {
	return &mockStageRepo{stages: make(map[string]*model.Stage)}
}

func (m *mockStageRepo) Create(_ context.Context, st *model.Stage) error {
	if st.StageID == "" {
		st.StageID = fmt.Sprintf("stage-%03d", len(m.stages)+1)
	}
	m.stages[st.StageID] = st
	return nil
}

func (m *mockStageRepo) GetByID(_ context.Context, id string) (*model.Stage, error) {
	if st, ok := m.stages[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) List(_ context.Context, req *dto.ListStagesRequest) ([]model.Stage, int64, error) {
	var result []model.Stage
	for _, st := range m.stages {
		if req.Statut != "" && st.Statut != req.Statut {
			continue
		}
		if req.StagiaireID != "" && st.StagiaireID != req.StagiaireID {
			continue
		}
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StageID < result[j].StageID })
	return result, int64(len(result)), nil
}

func (m *mockStageRepo) ListAll(_ context.Context) ([]model.Stage, error) {
	var result []model.Stage
	for _, st := range m.stages {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StageID < result[j].StageID })
	return result, nil
}

func (m *mockStageRepo) Update(_ context.Context, st *model.Stage) error {
	m.stages[st.StageID] = st
	return nil
}

func (m *mockStageRepo) UpdateStatut(_ context.Context, id, statut string) error {
	st, ok := m.stages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	st.Statut = statut
	return nil
}

func (m *mockStageRepo) Delete(_ context.Context, id string) error {
	delete(m.stages, id)
	return nil
}

func (m *mockStageRepo) CountOverlapping(_ context.Context, stagiaireID string, debut, fin time.Time, excludeID string) (int64, error) {
	var count int64
	for id, st := range m.stages {
		if id == excludeID || st.StagiaireID != stagiaireID {
			continue
		}
		if st.DateDebut.Before(fin) && st.DateFin.After(debut) {
			count++
		}
	}
	return count, nil
}

func (m *mockStageRepo) ListNonValides(_ context.Context) ([]model.Stage, error) {
	var result []model.Stage
	for _, st := range m.stages {
		if st.Statut != model.StatutValide {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StageID < result[j].StageID })
	return result, nil
}

func (m *mockStageRepo) ListSeTerminantEntre(_ context.Context, debut, fin time.Time) ([]model.Stage, error) {
	var result []model.Stage
	for _, st := range m.stages {
		if st.Statut != model.StatutEnCours {
			continue
		}
		if !st.DateFin.Before(debut) && !st.DateFin.After(fin) {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StageID < result[j].StageID })
	return result, nil
}

func (m *mockStageRepo) ListEnRetard(_ context.Context, finAvant time.Time) ([]model.Stage, error) {
	var result []model.Stage
	for _, st := range m.stages {
		if st.Statut != model.StatutValide && st.DateFin.Before(finAvant) {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StageID < result[j].StageID })
	return result, nil
}

func (m *mockStageRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.stages)), nil
}

func (m *mockStageRepo) CountByStatut(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, st := range m.stages {
		counts[st.Statut]++
	}
	return counts, nil
}

func (m *mockStageRepo) RepartitionMensuelle(_ context.Context, depuis time.Time) ([]dto.RepartitionMensuelle, error) {
	parMois := make(map[string]int64)
	for _, st := range m.stages {
		if st.DateDebut.Before(depuis) {
			continue
		}
		parMois[st.DateDebut.Format("2006-01")]++
	}
	mois := make([]string, 0, len(parMois))
	for k := range parMois {
		mois = append(mois, k)
	}
	sort.Strings(mois)
	result := make([]dto.RepartitionMensuelle, 0, len(mois))
	for _, k := range mois {
		result = append(result, dto.RepartitionMensuelle{Mois: k, NbStage: parMois[k]})
	}
	return result, nil
}

// ── Mock RapportRepository ──

type mockRapportRepo struct {
	rapports map[string]*model.Rapport
}

func newMockRapportRepo() *mockRapportRepo {
	return &mockRapportRepo{rapports: make(map[string]*model.Rapport)}
}

func (m *mockRapportRepo) Create(_ context.Context, r *model.Rapport) error {
	if r.RapportID == "" {
		r.RapportID = fmt.Sprintf("rpt-%03d", len(m.rapports)+1)
	}
	m.rapports[r.RapportID] = r
	return nil
}

func (m *mockRapportRepo) GetByID(_ context.Context, id string) (*model.Rapport, error) {
	if r, ok := m.rapports[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRapportRepo) GetByStageID(_ context.Context, stageID string) (*model.Rapport, error) {
	for _, r := range m.rapports {
		if r.StageID == stageID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRapportRepo) ExistsByStage(_ context.Context, stageID string) (bool, error) {
	for _, r := range m.rapports {
		if r.StageID == stageID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRapportRepo) List(_ context.Context, req *dto.ListRapportsRequest) ([]model.Rapport, int64, error) {
	var result []model.Rapport
	for _, r := range m.rapports {
		if req.Etat != "" && r.Etat != req.Etat {
			continue
		}
		if req.StageID != "" && r.StageID != req.StageID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RapportID < result[j].RapportID })
	return result, int64(len(result)), nil
}

func (m *mockRapportRepo) Update(_ context.Context, r *model.Rapport) error {
	m.rapports[r.RapportID] = r
	return nil
}

func (m *mockRapportRepo) Delete(_ context.Context, id string) error {
	delete(m.rapports, id)
	return nil
}

func (m *mockRapportRepo) CountByEtat(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, r := range m.rapports {
		counts[r.Etat]++
	}
	return counts, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	if u.UserID == "" {
		u.UserID = "usr-" + u.Username
	}
	m.users[u.UserID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.users[u.UserID] = u
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// fauxFichier fabrique un contenu de la taille voulue
func fauxFichier(taille int64) io.Reader {
	return bytes.NewReader(make([]byte, taille))
}

// ── Mock FileStorage ──

type mockFileStorage struct {
	fichiers map[string][]byte
}

func newMockFileStorage() *mockFileStorage {
	return &mockFileStorage{fichiers: make(map[string][]byte)}
}

func (m *mockFileStorage) Save(category, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := category + "/" + filename
	m.fichiers[ref] = data
	return ref, nil
}

func (m *mockFileStorage) Open(ref string) (io.ReadCloser, error) {
	data, ok := m.fichiers[ref]
	if !ok {
		return nil, fmt.Errorf("fichier %q introuvable", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockFileStorage) Remove(ref string) error {
	delete(m.fichiers, ref)
	return nil
}
