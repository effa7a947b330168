package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/internal/rules"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
	"github.com/TisTos-tass3/StagINS/pkg/storage"
)

var (
	ErrStageNotFound = errors.New("stage introuvable")
)

// StageService gestion du cycle de vie des stages
type StageService interface {
	Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StageResponse, error)
	List(ctx context.Context, req *dto.ListStagesRequest) (*dto.ListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	Delete(ctx context.Context, id string) error
	UploadLettre(ctx context.Context, id, filename string, taille int64, r io.Reader) (*dto.StageResponse, error)
	Attestation(ctx context.Context, id string) (*dto.AttestationResponse, error)
}

type stageService struct {
	repo   *repository.Repository
	files  storage.FileStorage
	logger *zap.Logger
}

// NewStageService crée un StageService
func NewStageService(repo *repository.Repository, files storage.FileStorage, logger *zap.Logger) StageService {
	return &stageService{repo: repo, files: files, logger: logger}
}

// validerStage contrôles métier communs à la création et à la mise à jour :
// cohérence des dates, règle d'affectation, existence des personnes liées et
// chevauchement de période. Le chevauchement reste consultatif, la contrainte
// d'exclusion de la table tranche en cas de course.
func (s *stageService) validerStage(ctx context.Context, stage *model.Stage, excludeID string) (apperrors.FieldErrors, error) {
	errs := apperrors.NewFieldErrors()

	if !stage.DateFin.After(stage.DateDebut) {
		errs.Add("date_fin", "La date de fin doit être postérieure à la date de début.")
	}

	affectation, errsAffectation := rules.NormaliserAffectation(rules.Affectation{
		Direction: stage.Direction,
		Division:  stage.Division,
		Unite:     stage.Unite,
		Service:   stage.Service,
	})
	errs.Merge(errsAffectation)
	stage.Division = affectation.Division
	stage.Unite = affectation.Unite
	stage.Service = affectation.Service

	if _, err := s.repo.Stagiaire.GetByID(ctx, stage.StagiaireID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("stagiaire_id", "Stagiaire introuvable.")
		} else {
			return nil, err
		}
	}

	if stage.EncadrantID != nil && *stage.EncadrantID != "" {
		if _, err := s.repo.Encadrant.GetByID(ctx, *stage.EncadrantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("encadrant_id", "Encadrant introuvable.")
			} else {
				return nil, err
			}
		}
	}

	// Le chevauchement n'est vérifié que si les bornes sont cohérentes et le
	// stagiaire connu ; les autres erreurs de champ ne l'escamotent pas.
	datesCoherentes := stage.DateFin.After(stage.DateDebut)
	_, stagiaireInconnu := errs["stagiaire_id"]
	if datesCoherentes && !stagiaireInconnu {
		nb, err := s.repo.Stage.CountOverlapping(ctx, stage.StagiaireID, stage.DateDebut, stage.DateFin, excludeID)
		if err != nil {
			return nil, err
		}
		if nb > 0 {
			errs.Add("date_debut", "Ce stagiaire a déjà un stage sur cette période.")
			errs.Add("date_fin", "Ce stagiaire a déjà un stage sur cette période.")
		}
	}

	return errs, nil
}

// calculerStatut pose le statut avant sauvegarde. Validé est définitif : seul
// le workflow des rapports peut l'attribuer, aucun recalcul ne le retire.
func (s *stageService) calculerStatut(stage *model.Stage) {
	if stage.Statut == model.StatutValide {
		return
	}
	stage.Statut = rules.CalculerStatutStage(time.Now(), stage.DateDebut, stage.DateFin, false)
}

func (s *stageService) Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	errs := apperrors.NewFieldErrors()

	dateDebut, err := time.Parse(formatDate, req.DateDebut)
	if err != nil {
		errs.Add("date_debut", "Date invalide, format attendu AAAA-MM-JJ.")
	}
	dateFin, err := time.Parse(formatDate, req.DateFin)
	if err != nil {
		errs.Add("date_fin", "Date invalide, format attendu AAAA-MM-JJ.")
	}
	if errs.HasErrors() {
		return nil, errs
	}

	stage := &model.Stage{
		Theme:       req.Theme,
		TypeStage:   req.TypeStage,
		DateDebut:   dateDebut,
		DateFin:     dateFin,
		Direction:   req.Direction,
		Division:    req.Division,
		Unite:       req.Unite,
		Service:     req.Service,
		Decision:    req.Decision,
		StagiaireID: req.StagiaireID,
	}
	if req.EncadrantID != "" {
		stage.EncadrantID = &req.EncadrantID
	}

	errs, err = s.validerStage(ctx, stage, "")
	if err != nil {
		s.logger.Error("validation du stage", zap.Error(err))
		return nil, err
	}
	if errs.HasErrors() {
		return nil, errs
	}

	s.calculerStatut(stage)

	if err := s.repo.Stage.Create(ctx, stage); err != nil {
		s.logger.Error("création du stage", zap.Error(err))
		return nil, traduireContrainte(err)
	}

	s.logger.Info("stage créé",
		zap.String("stage_id", stage.StageID),
		zap.String("statut", stage.Statut))

	created, err := s.repo.Stage.GetByID(ctx, stage.StageID)
	if err != nil {
		return toStageResponse(stage), nil
	}
	return toStageResponse(created), nil
}

func (s *stageService) GetByID(ctx context.Context, id string) (*dto.StageResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("lecture du stage", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStageResponse(stage), nil
}

func (s *stageService) List(ctx context.Context, req *dto.ListStagesRequest) (*dto.ListResponse, error) {
	stages, total, err := s.repo.Stage.List(ctx, req)
	if err != nil {
		s.logger.Error("liste des stages", zap.Error(err))
		return nil, err
	}

	items := make([]dto.StageResponse, 0, len(stages))
	for i := range stages {
		items = append(items, *toStageResponse(&stages[i]))
	}

	return &dto.ListResponse{
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Items:    items,
	}, nil
}

func (s *stageService) Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}

	if !rules.PeutModifierStage(stage.Rapports) {
		return nil, apperrors.Conflict("Impossible de modifier un stage dont le rapport est validé ou archivé.")
	}

	errs := apperrors.NewFieldErrors()
	if req.Theme != nil {
		stage.Theme = *req.Theme
	}
	if req.TypeStage != nil {
		stage.TypeStage = *req.TypeStage
	}
	if req.DateDebut != nil {
		d, err := time.Parse(formatDate, *req.DateDebut)
		if err != nil {
			errs.Add("date_debut", "Date invalide, format attendu AAAA-MM-JJ.")
		} else {
			stage.DateDebut = d
		}
	}
	if req.DateFin != nil {
		d, err := time.Parse(formatDate, *req.DateFin)
		if err != nil {
			errs.Add("date_fin", "Date invalide, format attendu AAAA-MM-JJ.")
		} else {
			stage.DateFin = d
		}
	}
	if req.Direction != nil {
		stage.Direction = *req.Direction
	}
	if req.Division != nil {
		stage.Division = *req.Division
	}
	if req.Unite != nil {
		stage.Unite = *req.Unite
	}
	if req.Service != nil {
		stage.Service = *req.Service
	}
	if req.Decision != nil {
		stage.Decision = *req.Decision
	}
	if req.EncadrantID != nil {
		if *req.EncadrantID == "" {
			stage.EncadrantID = nil
		} else {
			stage.EncadrantID = req.EncadrantID
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}

	errsValidation, err := s.validerStage(ctx, stage, id)
	if err != nil {
		return nil, err
	}
	if errsValidation.HasErrors() {
		return nil, errsValidation
	}

	s.calculerStatut(stage)

	stage.Stagiaire = nil
	stage.Encadrant = nil
	stage.Rapports = nil
	if err := s.repo.Stage.Update(ctx, stage); err != nil {
		s.logger.Error("mise à jour du stage", zap.String("id", id), zap.Error(err))
		return nil, traduireContrainte(err)
	}

	updated, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		return toStageResponse(stage), nil
	}
	return toStageResponse(updated), nil
}

func (s *stageService) Delete(ctx context.Context, id string) error {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStageNotFound
		}
		return err
	}

	if ok, motif := rules.PeutSupprimerStage(stage.Rapports); !ok {
		return apperrors.Conflict(motif)
	}

	if err := s.repo.Stage.Delete(ctx, id); err != nil {
		s.logger.Error("suppression du stage", zap.String("id", id), zap.Error(err))
		return err
	}

	if stage.LettreAcceptation != "" {
		if err := s.files.Remove(stage.LettreAcceptation); err != nil {
			s.logger.Warn("suppression de la lettre d'acceptation",
				zap.String("ref", stage.LettreAcceptation), zap.Error(err))
		}
	}

	s.logger.Info("stage supprimé", zap.String("stage_id", id))
	return nil
}

func (s *stageService) UploadLettre(ctx context.Context, id, filename string, taille int64, r io.Reader) (*dto.StageResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}

	if errs := rules.ValiderLettreAcceptation(filename, taille); errs.HasErrors() {
		return nil, errs
	}

	ref, err := s.files.Save(storage.CategorieLettres, filename, r)
	if err != nil {
		s.logger.Error("enregistrement de la lettre", zap.Error(err))
		return nil, err
	}

	ancienne := stage.LettreAcceptation
	stage.LettreAcceptation = ref
	stage.Stagiaire = nil
	stage.Encadrant = nil
	stage.Rapports = nil
	if err := s.repo.Stage.Update(ctx, stage); err != nil {
		s.logger.Error("mise à jour de la lettre", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if ancienne != "" {
		if err := s.files.Remove(ancienne); err != nil {
			s.logger.Warn("suppression de l'ancienne lettre", zap.String("ref", ancienne), zap.Error(err))
		}
	}

	updated, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		return toStageResponse(stage), nil
	}
	return toStageResponse(updated), nil
}

// Attestation prépare les données d'une attestation de fin de stage. Elle
// n'est délivrable que pour un stage au statut Validé.
func (s *stageService) Attestation(ctx context.Context, id string) (*dto.AttestationResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}

	if stage.Statut != model.StatutValide {
		return nil, apperrors.Conflict("L'attestation n'est délivrée que pour un stage validé.")
	}

	resp := &dto.AttestationResponse{
		Theme:          stage.Theme,
		Direction:      rules.NomCompletDirection(stage.Direction, stage.Unite),
		DirectionTexte: rules.DirectionAvecArticle(stage.Direction, stage.Unite),
		Duree:          rules.DureeEnMois(stage.DateDebut, stage.DateFin),
		DateDebut:      rules.DateEnLettres(stage.DateDebut),
		DateFin:        rules.DateEnLettres(stage.DateFin),
		DateEmission:   rules.DateEnLettres(time.Now()),
	}
	if stage.Stagiaire != nil {
		resp.Matricule = stage.Stagiaire.Matricule
		resp.NomComplet = stage.Stagiaire.Prenom + " " + stage.Stagiaire.Nom
		resp.Ecole = stage.Stagiaire.Ecole
	}
	if stage.Encadrant != nil {
		resp.Encadrant = stage.Encadrant.Prenom + " " + stage.Encadrant.Nom
	}
	return resp, nil
}
