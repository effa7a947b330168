package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

func setupTestStageService() (StageService, *testMocks) {
	repo, mocks := newTestRepo()
	return NewStageService(repo, mocks.files, zap.NewNop()), mocks
}

func seedStagiaire(mocks *testMocks, id string) {
	mocks.stagiaires.stagiaires[id] = &model.Stagiaire{
		StagiaireID: id,
		Nom:         "Diallo",
		Prenom:      "Aïcha",
		Matricule:   "STG-2024-0001",
		Email:       id + "@example.org",
	}
}

func stageRequest(stagiaireID, debut, fin string) *dto.CreateStageRequest {
	return &dto.CreateStageRequest{
		Theme:       "Cartographie censitaire",
		TypeStage:   model.TypeAcademique,
		DateDebut:   debut,
		DateFin:     fin,
		StagiaireID: stagiaireID,
	}
}

func TestStageService_Create_StatutSelonDates(t *testing.T) {
	aujourdhui := time.Now()
	jour := func(decalage int) string {
		return aujourdhui.AddDate(0, 0, decalage).Format("2006-01-02")
	}

	cases := []struct {
		nom     string
		debut   string
		fin     string
		attendu string
	}{
		{"période passée", jour(-90), jour(-60), model.StatutTermine},
		{"période courante", jour(-10), jour(+10), model.StatutEnCours},
		{"dernier jour aujourd'hui", jour(-30), jour(0), model.StatutEnCours},
		{"période future", jour(+10), jour(+40), model.StatutEnCours},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			svc, mocks := setupTestStageService()
			seedStagiaire(mocks, "stg-001")

			result, err := svc.Create(context.Background(), stageRequest("stg-001", c.debut, c.fin))
			if err != nil {
				t.Fatalf("Create devrait réussir: %v", err)
			}
			if result.Statut != c.attendu {
				t.Errorf("statut attendu %q, obtenu %q", c.attendu, result.Statut)
			}
		})
	}
}

func TestStageService_Create_ChevauchementRefuse(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01")); err != nil {
		t.Fatalf("premier stage: %v", err)
	}

	_, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-02-01", "2024-04-01"))
	fieldErrs, ok := apperrors.AsFieldErrors(err)
	if !ok {
		t.Fatalf("erreur de champ attendue pour un chevauchement, obtenu: %v", err)
	}
	// Le chevauchement est signalé sur les deux bornes de la période.
	if _, ok := fieldErrs["date_debut"]; !ok {
		t.Errorf("erreur attendue sur date_debut, obtenu %v", fieldErrs)
	}
	if _, ok := fieldErrs["date_fin"]; !ok {
		t.Errorf("erreur attendue sur date_fin, obtenu %v", fieldErrs)
	}
}

func TestStageService_Create_ChevauchementCumuleAvecAutresErreurs(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01")); err != nil {
		t.Fatalf("premier stage: %v", err)
	}

	// BCR sans unité : l'erreur d'affectation ne doit pas masquer le
	// chevauchement, toutes les erreurs de champ sont collectées.
	req := stageRequest("stg-001", "2024-02-01", "2024-04-01")
	req.Direction = model.DirectionBCR

	_, err := svc.Create(context.Background(), req)
	fieldErrs, ok := apperrors.AsFieldErrors(err)
	if !ok {
		t.Fatalf("erreur de champ attendue, obtenu: %v", err)
	}
	if _, ok := fieldErrs["unite"]; !ok {
		t.Errorf("erreur attendue sur unite, obtenu %v", fieldErrs)
	}
	if _, ok := fieldErrs["date_debut"]; !ok {
		t.Errorf("erreur attendue sur date_debut, obtenu %v", fieldErrs)
	}
	if _, ok := fieldErrs["date_fin"]; !ok {
		t.Errorf("erreur attendue sur date_fin, obtenu %v", fieldErrs)
	}
}

func TestStageService_Create_PeriodesDisjointesAcceptees(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01")); err != nil {
		t.Fatalf("premier stage: %v", err)
	}

	// Intervalle semi-ouvert : démarrer le jour même de la fin du précédent passe.
	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-03-01", "2024-04-01")); err != nil {
		t.Errorf("un stage enchaîné bout à bout devrait passer: %v", err)
	}
	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-05-01", "2024-06-01")); err != nil {
		t.Errorf("un stage disjoint devrait passer: %v", err)
	}
}

func TestStageService_Create_ChevauchementAutreStagiaire(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")
	seedStagiaire(mocks, "stg-002")

	if _, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01")); err != nil {
		t.Fatalf("premier stage: %v", err)
	}

	// La même période chez un autre stagiaire n'est pas un chevauchement.
	if _, err := svc.Create(context.Background(), stageRequest("stg-002", "2024-01-01", "2024-03-01")); err != nil {
		t.Errorf("le chevauchement ne vaut que par stagiaire: %v", err)
	}
}

func TestStageService_Create_DatesIncoherentes(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	_, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-03-01", "2024-01-01"))
	fieldErrs, ok := apperrors.AsFieldErrors(err)
	if !ok {
		t.Fatalf("erreur de champ attendue, obtenu: %v", err)
	}
	if _, ok := fieldErrs["date_fin"]; !ok {
		t.Errorf("erreur attendue sur date_fin, obtenu %v", fieldErrs)
	}
}

func TestStageService_Create_ReglePlacementBCR(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	req := stageRequest("stg-001", "2024-01-01", "2024-03-01")
	req.Direction = model.DirectionBCR
	req.Division = "Division A"
	req.Unite = "Cartographie"
	req.Service = "Terrain"

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create devrait réussir: %v", err)
	}
	if result.Division != "" {
		t.Errorf("la division doit être effacée pour le BCR, obtenu %q", result.Division)
	}
	if result.Unite != "Cartographie" {
		t.Errorf("l'unité doit être conservée, obtenu %q", result.Unite)
	}

	// BCR sans unité est refusé.
	req2 := stageRequest("stg-001", "2024-05-01", "2024-06-01")
	req2.Direction = model.DirectionBCR
	_, err = svc.Create(context.Background(), req2)
	fieldErrs, ok := apperrors.AsFieldErrors(err)
	if !ok {
		t.Fatalf("erreur de champ attendue, obtenu: %v", err)
	}
	if _, ok := fieldErrs["unite"]; !ok {
		t.Errorf("erreur attendue sur unite, obtenu %v", fieldErrs)
	}
}

func TestStageService_Create_HorsBCREffaceUniteEtService(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	req := stageRequest("stg-001", "2024-01-01", "2024-03-01")
	req.Direction = "DRH"
	req.Division = "Paie"
	req.Unite = "Cartographie"
	req.Service = "Terrain"

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create devrait réussir: %v", err)
	}
	if result.Unite != "" || result.Service != "" {
		t.Errorf("unité et service doivent être effacés hors BCR, obtenu %q/%q", result.Unite, result.Service)
	}
	if result.Division != "Paie" {
		t.Errorf("la division doit être conservée, obtenu %q", result.Division)
	}
}

func TestStageService_Create_StagiaireInconnu(t *testing.T) {
	svc, _ := setupTestStageService()

	_, err := svc.Create(context.Background(), stageRequest("inconnu", "2024-01-01", "2024-03-01"))
	fieldErrs, ok := apperrors.AsFieldErrors(err)
	if !ok {
		t.Fatalf("erreur de champ attendue, obtenu: %v", err)
	}
	if _, ok := fieldErrs["stagiaire_id"]; !ok {
		t.Errorf("erreur attendue sur stagiaire_id, obtenu %v", fieldErrs)
	}
}

func TestStageService_Update_BloqueParRapportValide(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	created, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mocks.stages.stages[created.ID].Rapports = []model.Rapport{
		{RapportID: "rpt-001", StageID: created.ID, Etat: model.EtatValide},
	}

	theme := "Nouveau thème"
	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateStageRequest{Theme: &theme})
	if _, ok := apperrors.AsStateConflict(err); !ok {
		t.Errorf("conflit d'état attendu, obtenu: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err == nil {
		t.Error("la suppression devrait aussi être bloquée")
	}
}

func TestStageService_Update_ConserveStatutValide(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	created, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mocks.stages.stages[created.ID].Statut = model.StatutValide

	theme := "Thème ajusté"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateStageRequest{Theme: &theme})
	if err != nil {
		t.Fatalf("Update devrait réussir: %v", err)
	}
	if updated.Statut != model.StatutValide {
		t.Errorf("le statut Validé est définitif, obtenu %q", updated.Statut)
	}
}

func TestStageService_UploadLettre(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	created, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.UploadLettre(context.Background(), created.ID, "lettre.docx", 1024, fauxFichier(1024))
	if _, ok := apperrors.AsFieldErrors(err); !ok {
		t.Fatalf("un .docx doit être refusé comme lettre, obtenu: %v", err)
	}

	result, err := svc.UploadLettre(context.Background(), created.ID, "lettre.pdf", 1024, fauxFichier(1024))
	if err != nil {
		t.Fatalf("UploadLettre devrait réussir: %v", err)
	}
	if result.LettreAcceptation == "" {
		t.Error("la référence de la lettre devrait être renseignée")
	}
	if _, ok := mocks.files.fichiers[result.LettreAcceptation]; !ok {
		t.Error("le fichier devrait être stocké")
	}
}

func TestStageService_Attestation(t *testing.T) {
	svc, mocks := setupTestStageService()
	seedStagiaire(mocks, "stg-001")

	created, err := svc.Create(context.Background(), stageRequest("stg-001", "2024-01-01", "2024-03-01"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Refusée tant que le stage n'est pas validé.
	if _, err := svc.Attestation(context.Background(), created.ID); err == nil {
		t.Error("l'attestation d'un stage non validé devrait être refusée")
	}

	stage := mocks.stages.stages[created.ID]
	stage.Statut = model.StatutValide
	stage.Stagiaire = mocks.stagiaires.stagiaires["stg-001"]

	attestation, err := svc.Attestation(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Attestation devrait réussir: %v", err)
	}
	if attestation.NomComplet != "Aïcha Diallo" {
		t.Errorf("nom complet attendu %q, obtenu %q", "Aïcha Diallo", attestation.NomComplet)
	}
	if attestation.Matricule != "STG-2024-0001" {
		t.Errorf("matricule attendu STG-2024-0001, obtenu %q", attestation.Matricule)
	}
	if attestation.Duree != "2 mois" {
		t.Errorf("durée attendue %q, obtenue %q", "2 mois", attestation.Duree)
	}
	if attestation.DateDebut != "1 janvier 2024" {
		t.Errorf("date en lettres attendue, obtenu %q", attestation.DateDebut)
	}
}
