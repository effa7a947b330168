package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/internal/rules"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

var (
	ErrStagiaireNotFound = errors.New("stagiaire introuvable")
)

// StagiaireService gestion des stagiaires
type StagiaireService interface {
	Create(ctx context.Context, req *dto.CreateStagiaireRequest) (*dto.StagiaireResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StagiaireDetailResponse, error)
	GetByMatricule(ctx context.Context, matricule string) (*dto.StagiaireResponse, error)
	List(ctx context.Context, req *dto.ListStagiairesRequest) (*dto.ListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStagiaireRequest) (*dto.StagiaireResponse, error)
	Delete(ctx context.Context, id string) error
}

type stagiaireService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStagiaireService crée un StagiaireService
func NewStagiaireService(repo *repository.Repository, logger *zap.Logger) StagiaireService {
	return &stagiaireService{repo: repo, logger: logger}
}

// validerStagiaire contrôles métier communs à la création et à la mise à jour
func (s *stagiaireService) validerStagiaire(ctx context.Context, stagiaire *model.Stagiaire, excludeID string) (apperrors.FieldErrors, error) {
	errs := apperrors.NewFieldErrors()

	if !rules.TelephoneValide(stagiaire.Telephone) {
		errs.Add("telephone", "Le numéro de téléphone ne doit contenir que des chiffres.")
	}
	if !rules.NiveauEtudeValide(stagiaire.NiveauEtude) {
		errs.Add("niveau_etude", rules.MessageNiveauEtudeInvalide())
	}

	pris, err := s.repo.Stagiaire.ExistsByEmail(ctx, stagiaire.Email, excludeID)
	if err != nil {
		return nil, err
	}
	if pris {
		errs.Add("email", "Un stagiaire avec cet email existe déjà.")
	}

	return errs, nil
}

func (s *stagiaireService) Create(ctx context.Context, req *dto.CreateStagiaireRequest) (*dto.StagiaireResponse, error) {
	stagiaire := &model.Stagiaire{
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Ecole:       req.Ecole,
		Specialite:  req.Specialite,
		NiveauEtude: req.NiveauEtude,
		Email:       req.Email,
		Telephone:   req.Telephone,
	}

	errs, err := s.validerStagiaire(ctx, stagiaire, "")
	if err != nil {
		s.logger.Error("validation du stagiaire", zap.Error(err))
		return nil, err
	}
	if errs.HasErrors() {
		return nil, errs
	}

	numero, err := s.repo.Stagiaire.NextMatricule(ctx)
	if err != nil {
		s.logger.Error("tirage du matricule", zap.Error(err))
		return nil, err
	}
	stagiaire.Matricule = rules.FormatMatricule(time.Now().Year(), numero)

	if err := s.repo.Stagiaire.Create(ctx, stagiaire); err != nil {
		s.logger.Error("création du stagiaire", zap.Error(err))
		return nil, traduireContrainte(err)
	}

	s.logger.Info("stagiaire créé",
		zap.String("stagiaire_id", stagiaire.StagiaireID),
		zap.String("matricule", stagiaire.Matricule))

	return toStagiaireResponse(stagiaire), nil
}

func (s *stagiaireService) GetByID(ctx context.Context, id string) (*dto.StagiaireDetailResponse, error) {
	stagiaire, err := s.repo.Stagiaire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStagiaireNotFound
		}
		s.logger.Error("lecture du stagiaire", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.StagiaireDetailResponse{
		StagiaireResponse: *toStagiaireResponse(stagiaire),
		Stages:            make([]dto.StageResponse, 0, len(stagiaire.Stages)),
	}
	for i := range stagiaire.Stages {
		detail.Stages = append(detail.Stages, *toStageResponse(&stagiaire.Stages[i]))
	}
	return detail, nil
}

func (s *stagiaireService) GetByMatricule(ctx context.Context, matricule string) (*dto.StagiaireResponse, error) {
	stagiaire, err := s.repo.Stagiaire.GetByMatricule(ctx, matricule)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStagiaireNotFound
		}
		s.logger.Error("lecture par matricule", zap.String("matricule", matricule), zap.Error(err))
		return nil, err
	}
	return toStagiaireResponse(stagiaire), nil
}

func (s *stagiaireService) List(ctx context.Context, req *dto.ListStagiairesRequest) (*dto.ListResponse, error) {
	stagiaires, total, err := s.repo.Stagiaire.List(ctx, req)
	if err != nil {
		s.logger.Error("liste des stagiaires", zap.Error(err))
		return nil, err
	}

	items := make([]dto.StagiaireResponse, 0, len(stagiaires))
	for i := range stagiaires {
		items = append(items, *toStagiaireResponse(&stagiaires[i]))
	}

	return &dto.ListResponse{
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Items:    items,
	}, nil
}

func (s *stagiaireService) Update(ctx context.Context, id string, req *dto.UpdateStagiaireRequest) (*dto.StagiaireResponse, error) {
	stagiaire, err := s.repo.Stagiaire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStagiaireNotFound
		}
		return nil, err
	}

	// Le matricule ne change jamais ; renvoyer la valeur courante passe,
	// en proposer une autre est refusé explicitement.
	if req.Matricule != nil && *req.Matricule != stagiaire.Matricule {
		errs := apperrors.NewFieldErrors()
		errs.Add("matricule", "Le matricule ne peut pas être modifié.")
		return nil, errs
	}

	if req.Nom != nil {
		stagiaire.Nom = *req.Nom
	}
	if req.Prenom != nil {
		stagiaire.Prenom = *req.Prenom
	}
	if req.Ecole != nil {
		stagiaire.Ecole = *req.Ecole
	}
	if req.Specialite != nil {
		stagiaire.Specialite = *req.Specialite
	}
	if req.NiveauEtude != nil {
		stagiaire.NiveauEtude = *req.NiveauEtude
	}
	if req.Email != nil {
		stagiaire.Email = *req.Email
	}
	if req.Telephone != nil {
		stagiaire.Telephone = *req.Telephone
	}

	errs, err := s.validerStagiaire(ctx, stagiaire, id)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return nil, errs
	}

	stagiaire.Stages = nil
	if err := s.repo.Stagiaire.Update(ctx, stagiaire); err != nil {
		s.logger.Error("mise à jour du stagiaire", zap.String("id", id), zap.Error(err))
		return nil, traduireContrainte(err)
	}

	return toStagiaireResponse(stagiaire), nil
}

func (s *stagiaireService) Delete(ctx context.Context, id string) error {
	stagiaire, err := s.repo.Stagiaire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStagiaireNotFound
		}
		return err
	}

	// Seul un stage en cours interdit la suppression ; les stages terminés
	// ou validés partent en cascade avec leurs rapports.
	for i := range stagiaire.Stages {
		if stagiaire.Stages[i].Statut == model.StatutEnCours {
			return apperrors.Conflict("le stagiaire a un stage en cours et ne peut pas être supprimé")
		}
	}

	if err := s.repo.Stagiaire.Delete(ctx, id); err != nil {
		s.logger.Error("suppression du stagiaire", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("stagiaire supprimé", zap.String("stagiaire_id", id))
	return nil
}

