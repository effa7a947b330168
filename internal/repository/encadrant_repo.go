package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
)

// EncadrantRepository accès aux encadrants
type EncadrantRepository interface {
	Create(ctx context.Context, encadrant *model.Encadrant) error
	GetByID(ctx context.Context, id string) (*model.Encadrant, error)
	List(ctx context.Context, req *dto.ListEncadrantsRequest) ([]model.Encadrant, int64, error)
	Update(ctx context.Context, encadrant *model.Encadrant) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsByTelephone(ctx context.Context, telephone, excludeID string) (bool, error)
	CountStages(ctx context.Context, encadrantID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type encadrantRepo struct {
	db *gorm.DB
}

// NewEncadrantRepo crée un EncadrantRepository
func NewEncadrantRepo(db *gorm.DB) EncadrantRepository {
	return &encadrantRepo{db: db}
}

func (r *encadrantRepo) Create(ctx context.Context, encadrant *model.Encadrant) error {
	return r.db.WithContext(ctx).Create(encadrant).Error
}

func (r *encadrantRepo) GetByID(ctx context.Context, id string) (*model.Encadrant, error) {
	var encadrant model.Encadrant
	err := r.db.WithContext(ctx).
		Where("encadrant_id = ?", id).
		First(&encadrant).Error
	if err != nil {
		return nil, err
	}
	return &encadrant, nil
}

func (r *encadrantRepo) List(ctx context.Context, req *dto.ListEncadrantsRequest) ([]model.Encadrant, int64, error) {
	var encadrants []model.Encadrant
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Encadrant{})

	if req.Recherche != "" {
		motif := "%" + req.Recherche + "%"
		db = db.Where(
			"nom ILIKE ? OR prenom ILIKE ? OR nom_institution ILIKE ?",
			motif, motif, motif,
		)
	}
	if req.Institution != "" {
		db = db.Where("institution = ?", req.Institution)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("created_at DESC").
		Find(&encadrants).Error
	if err != nil {
		return nil, 0, err
	}

	return encadrants, total, nil
}

func (r *encadrantRepo) Update(ctx context.Context, encadrant *model.Encadrant) error {
	return r.db.WithContext(ctx).Save(encadrant).Error
}

func (r *encadrantRepo) Delete(ctx context.Context, id string) error {
	// Les stages encadrés sont conservés, leur encadrant passe à NULL.
	return r.db.WithContext(ctx).
		Where("encadrant_id = ?", id).
		Delete(&model.Encadrant{}).Error
}

func (r *encadrantRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Encadrant{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		db = db.Where("encadrant_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *encadrantRepo) ExistsByTelephone(ctx context.Context, telephone, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Encadrant{}).
		Where("telephone = ?", telephone)
	if excludeID != "" {
		db = db.Where("encadrant_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *encadrantRepo) CountStages(ctx context.Context, encadrantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Stage{}).
		Where("encadrant_id = ?", encadrantID).
		Count(&count).Error
	return count, err
}

func (r *encadrantRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Encadrant{}).Count(&count).Error
	return count, err
}
