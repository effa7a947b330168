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
	ErrRapportNotFound = errors.New("rapport introuvable")
)

// RapportService gestion des rapports de stage et de leur workflow
type RapportService interface {
	Create(ctx context.Context, req *dto.CreateRapportRequest, filename string, taille int64, r io.Reader) (*dto.RapportResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RapportResponse, error)
	List(ctx context.Context, req *dto.ListRapportsRequest) (*dto.ListResponse, error)
	ReplaceFile(ctx context.Context, id, filename string, taille int64, r io.Reader) (*dto.RapportResponse, error)
	Workflow(ctx context.Context, id string, req *dto.WorkflowRapportRequest) (*dto.RapportResponse, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, string, error)
}

type rapportService struct {
	repo   *repository.Repository
	files  storage.FileStorage
	logger *zap.Logger
}

// NewRapportService crée un RapportService
func NewRapportService(repo *repository.Repository, files storage.FileStorage, logger *zap.Logger) RapportService {
	return &rapportService{repo: repo, files: files, logger: logger}
}

func (s *rapportService) Create(ctx context.Context, req *dto.CreateRapportRequest, filename string, taille int64, r io.Reader) (*dto.RapportResponse, error) {
	errs := apperrors.NewFieldErrors()

	if _, err := s.repo.Stage.GetByID(ctx, req.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("stage_id", "Stage introuvable.")
		} else {
			return nil, err
		}
	}

	// Contrôle consultatif ; la contrainte unique sur stage_id fait foi.
	if !errs.HasErrors() {
		existe, err := s.repo.Rapport.ExistsByStage(ctx, req.StageID)
		if err != nil {
			return nil, err
		}
		if existe {
			errs.Add("stage_id", "Un rapport existe déjà pour ce stage.")
		}
	}

	errs.Merge(rules.ValiderFichierRapport(filename, taille))
	if errs.HasErrors() {
		return nil, errs
	}

	ref, err := s.files.Save(storage.CategorieRapports, filename, r)
	if err != nil {
		s.logger.Error("enregistrement du fichier du rapport", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	rapport := &model.Rapport{
		StageID:       req.StageID,
		Etat:          model.EtatEnAttente,
		DateDepot:     now,
		DerniereModif: now,
		Fichier:       ref,
	}

	if err := s.repo.Rapport.Create(ctx, rapport); err != nil {
		if errSuppr := s.files.Remove(ref); errSuppr != nil {
			s.logger.Warn("nettoyage du fichier orphelin", zap.String("ref", ref), zap.Error(errSuppr))
		}
		s.logger.Error("création du rapport", zap.Error(err))
		return nil, traduireContrainte(err)
	}

	s.logger.Info("rapport déposé",
		zap.String("rapport_id", rapport.RapportID),
		zap.String("stage_id", rapport.StageID))

	return toRapportResponse(rapport), nil
}

func (s *rapportService) GetByID(ctx context.Context, id string) (*dto.RapportResponse, error) {
	rapport, err := s.repo.Rapport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRapportNotFound
		}
		s.logger.Error("lecture du rapport", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toRapportResponse(rapport)
	if rapport.Stage != nil {
		resp.Stage = toStageResponse(rapport.Stage)
	}
	return resp, nil
}

func (s *rapportService) List(ctx context.Context, req *dto.ListRapportsRequest) (*dto.ListResponse, error) {
	rapports, total, err := s.repo.Rapport.List(ctx, req)
	if err != nil {
		s.logger.Error("liste des rapports", zap.Error(err))
		return nil, err
	}

	items := make([]dto.RapportResponse, 0, len(rapports))
	for i := range rapports {
		resp := toRapportResponse(&rapports[i])
		if rapports[i].Stage != nil {
			resp.Stage = toStageResponse(rapports[i].Stage)
		}
		items = append(items, *resp)
	}

	return &dto.ListResponse{
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Items:    items,
	}, nil
}

// ReplaceFile remplace le fichier d'un rapport encore en attente.
func (s *rapportService) ReplaceFile(ctx context.Context, id, filename string, taille int64, r io.Reader) (*dto.RapportResponse, error) {
	rapport, err := s.repo.Rapport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRapportNotFound
		}
		return nil, err
	}

	if !rules.PeutModifierRapport(rapport.Etat) {
		return nil, apperrors.Conflict("Seul un rapport en attente peut être modifié.")
	}

	if errs := rules.ValiderFichierRapport(filename, taille); errs.HasErrors() {
		return nil, errs
	}

	ref, err := s.files.Save(storage.CategorieRapports, filename, r)
	if err != nil {
		s.logger.Error("enregistrement du fichier du rapport", zap.Error(err))
		return nil, err
	}

	ancien := rapport.Fichier
	rapport.Fichier = ref
	rapport.DerniereModif = time.Now()
	rapport.Stage = nil
	if err := s.repo.Rapport.Update(ctx, rapport); err != nil {
		s.logger.Error("mise à jour du rapport", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if ancien != "" && ancien != ref {
		if err := s.files.Remove(ancien); err != nil {
			s.logger.Warn("suppression de l'ancien fichier", zap.String("ref", ancien), zap.Error(err))
		}
	}

	return toRapportResponse(rapport), nil
}

// Workflow applique une action de workflow sur un rapport. La validation
// promeut aussi le stage au statut Validé ; les deux écritures passent par
// la même transaction pour ne jamais diverger.
func (s *rapportService) Workflow(ctx context.Context, id string, req *dto.WorkflowRapportRequest) (*dto.RapportResponse, error) {
	rapport, err := s.repo.Rapport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRapportNotFound
		}
		return nil, err
	}

	ok, motif := rules.ValiderWorkflowRapport(rapport.Etat, req.Action)
	if !ok {
		return nil, apperrors.Conflict(motif)
	}

	switch req.Action {
	case rules.ActionValider:
		if err := s.validerEnTransaction(ctx, rapport); err != nil {
			return nil, err
		}
	case rules.ActionArchiver:
		rapport.Etat = model.EtatArchive
		rapport.DerniereModif = time.Now()
		rapport.Stage = nil
		if err := s.repo.Rapport.Update(ctx, rapport); err != nil {
			s.logger.Error("archivage du rapport", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("workflow du rapport",
		zap.String("rapport_id", id),
		zap.String("action", req.Action),
		zap.String("etat", rapport.Etat))

	return toRapportResponse(rapport), nil
}

func (s *rapportService) validerEnTransaction(ctx context.Context, rapport *model.Rapport) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("ouverture de la transaction", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	rapport.Etat = model.EtatValide
	rapport.DerniereModif = time.Now()
	rapport.Stage = nil
	if err := txRepo.Rapport.Update(ctx, rapport); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("validation du rapport", zap.String("id", rapport.RapportID), zap.Error(err))
		return err
	}

	if err := txRepo.Stage.UpdateStatut(ctx, rapport.StageID, model.StatutValide); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("promotion du stage", zap.String("stage_id", rapport.StageID), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("commit de la validation", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *rapportService) Delete(ctx context.Context, id string) error {
	rapport, err := s.repo.Rapport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRapportNotFound
		}
		return err
	}

	if ok, motif := rules.PeutSupprimerRapport(rapport.Etat); !ok {
		return apperrors.Conflict(motif)
	}

	if err := s.repo.Rapport.Delete(ctx, id); err != nil {
		s.logger.Error("suppression du rapport", zap.String("id", id), zap.Error(err))
		return err
	}

	if rapport.Fichier != "" {
		if err := s.files.Remove(rapport.Fichier); err != nil {
			s.logger.Warn("suppression du fichier du rapport", zap.String("ref", rapport.Fichier), zap.Error(err))
		}
	}

	s.logger.Info("rapport supprimé", zap.String("rapport_id", id))
	return nil
}

func (s *rapportService) Download(ctx context.Context, id string) (io.ReadCloser, string, error) {
	rapport, err := s.repo.Rapport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrRapportNotFound
		}
		return nil, "", err
	}

	rc, err := s.files.Open(rapport.Fichier)
	if err != nil {
		s.logger.Error("ouverture du fichier du rapport", zap.String("ref", rapport.Fichier), zap.Error(err))
		return nil, "", err
	}
	return rc, rapport.Fichier, nil
}
