package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/internal/rules"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

var (
	ErrEncadrantNotFound = errors.New("encadrant introuvable")
)

// EncadrantService gestion des encadrants
type EncadrantService interface {
	Create(ctx context.Context, req *dto.CreateEncadrantRequest) (*dto.EncadrantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EncadrantResponse, error)
	List(ctx context.Context, req *dto.ListEncadrantsRequest) (*dto.ListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEncadrantRequest) (*dto.EncadrantResponse, error)
	Delete(ctx context.Context, id string) error
}

type encadrantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEncadrantService crée un EncadrantService
func NewEncadrantService(repo *repository.Repository, logger *zap.Logger) EncadrantService {
	return &encadrantService{repo: repo, logger: logger}
}

// validerEncadrant contrôles métier communs à la création et à la mise à
// jour. Une affiliation interne efface le nom d'institution ; une affiliation
// externe l'exige.
func (s *encadrantService) validerEncadrant(ctx context.Context, encadrant *model.Encadrant, excludeID string) (apperrors.FieldErrors, error) {
	errs := apperrors.NewFieldErrors()

	if !rules.TelephoneValide(encadrant.Telephone) {
		errs.Add("telephone", "Le numéro de téléphone ne doit contenir que des chiffres.")
	}

	switch encadrant.Institution {
	case model.InstitutionInterne:
		encadrant.NomInstitution = ""
	case model.InstitutionExterne:
		if encadrant.NomInstitution == "" {
			errs.Add("nom_institution", "Le nom de l'institution est obligatoire pour un encadrant externe.")
		}
	}

	pris, err := s.repo.Encadrant.ExistsByEmail(ctx, encadrant.Email, excludeID)
	if err != nil {
		return nil, err
	}
	if pris {
		errs.Add("email", "Un encadrant avec cet email existe déjà.")
	}

	if encadrant.Telephone != "" {
		pris, err = s.repo.Encadrant.ExistsByTelephone(ctx, encadrant.Telephone, excludeID)
		if err != nil {
			return nil, err
		}
		if pris {
			errs.Add("telephone", "Un encadrant avec ce numéro de téléphone existe déjà.")
		}
	}

	return errs, nil
}

func (s *encadrantService) Create(ctx context.Context, req *dto.CreateEncadrantRequest) (*dto.EncadrantResponse, error) {
	encadrant := &model.Encadrant{
		Nom:            req.Nom,
		Prenom:         req.Prenom,
		Institution:    req.Institution,
		NomInstitution: req.NomInstitution,
		Email:          req.Email,
		Telephone:      req.Telephone,
	}

	errs, err := s.validerEncadrant(ctx, encadrant, "")
	if err != nil {
		s.logger.Error("validation de l'encadrant", zap.Error(err))
		return nil, err
	}
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.repo.Encadrant.Create(ctx, encadrant); err != nil {
		s.logger.Error("création de l'encadrant", zap.Error(err))
		return nil, traduireContrainte(err)
	}

	s.logger.Info("encadrant créé", zap.String("encadrant_id", encadrant.EncadrantID))
	return s.toEncadrantResponse(ctx, encadrant), nil
}

func (s *encadrantService) GetByID(ctx context.Context, id string) (*dto.EncadrantResponse, error) {
	encadrant, err := s.repo.Encadrant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEncadrantNotFound
		}
		s.logger.Error("lecture de l'encadrant", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEncadrantResponse(ctx, encadrant), nil
}

func (s *encadrantService) List(ctx context.Context, req *dto.ListEncadrantsRequest) (*dto.ListResponse, error) {
	encadrants, total, err := s.repo.Encadrant.List(ctx, req)
	if err != nil {
		s.logger.Error("liste des encadrants", zap.Error(err))
		return nil, err
	}

	items := make([]dto.EncadrantResponse, 0, len(encadrants))
	for i := range encadrants {
		items = append(items, *s.toEncadrantResponse(ctx, &encadrants[i]))
	}

	return &dto.ListResponse{
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Items:    items,
	}, nil
}

func (s *encadrantService) Update(ctx context.Context, id string, req *dto.UpdateEncadrantRequest) (*dto.EncadrantResponse, error) {
	encadrant, err := s.repo.Encadrant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEncadrantNotFound
		}
		return nil, err
	}

	if req.Nom != nil {
		encadrant.Nom = *req.Nom
	}
	if req.Prenom != nil {
		encadrant.Prenom = *req.Prenom
	}
	if req.Institution != nil {
		encadrant.Institution = *req.Institution
	}
	if req.NomInstitution != nil {
		encadrant.NomInstitution = *req.NomInstitution
	}
	if req.Email != nil {
		encadrant.Email = *req.Email
	}
	if req.Telephone != nil {
		encadrant.Telephone = *req.Telephone
	}

	errs, err := s.validerEncadrant(ctx, encadrant, id)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.repo.Encadrant.Update(ctx, encadrant); err != nil {
		s.logger.Error("mise à jour de l'encadrant", zap.String("id", id), zap.Error(err))
		return nil, traduireContrainte(err)
	}

	return s.toEncadrantResponse(ctx, encadrant), nil
}

func (s *encadrantService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Encadrant.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEncadrantNotFound
		}
		return err
	}

	nbStages, err := s.repo.Encadrant.CountStages(ctx, id)
	if err != nil {
		return err
	}
	if nbStages > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"Impossible de supprimer cet encadrant: %d stage(s) lui sont rattachés.", nbStages))
	}

	if err := s.repo.Encadrant.Delete(ctx, id); err != nil {
		s.logger.Error("suppression de l'encadrant", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("encadrant supprimé", zap.String("encadrant_id", id))
	return nil
}

func (s *encadrantService) toEncadrantResponse(ctx context.Context, e *model.Encadrant) *dto.EncadrantResponse {
	resp := toEncadrantResponse(e)
	if nb, err := s.repo.Encadrant.CountStages(ctx, e.EncadrantID); err == nil {
		resp.NbStages = nb
	}
	return resp
}
