package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
)

// RapportRepository accès aux rapports
type RapportRepository interface {
	Create(ctx context.Context, rapport *model.Rapport) error
	GetByID(ctx context.Context, id string) (*model.Rapport, error)
	GetByStageID(ctx context.Context, stageID string) (*model.Rapport, error)
	ExistsByStage(ctx context.Context, stageID string) (bool, error)
	List(ctx context.Context, req *dto.ListRapportsRequest) ([]model.Rapport, int64, error)
	Update(ctx context.Context, rapport *model.Rapport) error
	Delete(ctx context.Context, id string) error
	CountByEtat(ctx context.Context) (map[string]int64, error)
}

type rapportRepo struct {
	db *gorm.DB
}

// NewRapportRepo crée un RapportRepository
func NewRapportRepo(db *gorm.DB) RapportRepository {
	return &rapportRepo{db: db}
}

func (r *rapportRepo) Create(ctx context.Context, rapport *model.Rapport) error {
	return r.db.WithContext(ctx).Create(rapport).Error
}

func (r *rapportRepo) GetByID(ctx context.Context, id string) (*model.Rapport, error) {
	var rapport model.Rapport
	err := r.db.WithContext(ctx).
		Preload("Stage").
		Preload("Stage.Stagiaire").
		Where("rapport_id = ?", id).
		First(&rapport).Error
	if err != nil {
		return nil, err
	}
	return &rapport, nil
}

func (r *rapportRepo) GetByStageID(ctx context.Context, stageID string) (*model.Rapport, error) {
	var rapport model.Rapport
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		First(&rapport).Error
	if err != nil {
		return nil, err
	}
	return &rapport, nil
}

func (r *rapportRepo) ExistsByStage(ctx context.Context, stageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rapport{}).
		Where("stage_id = ?", stageID).
		Count(&count).Error
	return count > 0, err
}

func (r *rapportRepo) List(ctx context.Context, req *dto.ListRapportsRequest) ([]model.Rapport, int64, error) {
	var rapports []model.Rapport
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Rapport{})

	if req.Etat != "" {
		db = db.Where("etat = ?", req.Etat)
	}
	if req.StageID != "" {
		db = db.Where("stage_id = ?", req.StageID)
	}
	if req.Annee != 0 {
		db = db.Where("EXTRACT(YEAR FROM date_depot) = ?", req.Annee)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Stage").
		Preload("Stage.Stagiaire").
		Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("date_depot DESC").
		Find(&rapports).Error
	if err != nil {
		return nil, 0, err
	}

	return rapports, total, nil
}

func (r *rapportRepo) Update(ctx context.Context, rapport *model.Rapport) error {
	return r.db.WithContext(ctx).Save(rapport).Error
}

func (r *rapportRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rapport_id = ?", id).
		Delete(&model.Rapport{}).Error
}

func (r *rapportRepo) CountByEtat(ctx context.Context) (map[string]int64, error) {
	var lignes []struct {
		Etat string
		Nb   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rapport{}).
		Select("etat, COUNT(*) AS nb").
		Group("etat").
		Scan(&lignes).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(lignes))
	for _, l := range lignes {
		counts[l.Etat] = l.Nb
	}
	return counts, nil
}
