package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
)

// StagiaireRepository accès aux stagiaires
type StagiaireRepository interface {
	Create(ctx context.Context, stagiaire *model.Stagiaire) error
	GetByID(ctx context.Context, id string) (*model.Stagiaire, error)
	GetByMatricule(ctx context.Context, matricule string) (*model.Stagiaire, error)
	List(ctx context.Context, req *dto.ListStagiairesRequest) ([]model.Stagiaire, int64, error)
	Update(ctx context.Context, stagiaire *model.Stagiaire) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	NextMatricule(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type stagiaireRepo struct {
	db *gorm.DB
}

// NewStagiaireRepo crée un StagiaireRepository
func NewStagiaireRepo(db *gorm.DB) StagiaireRepository {
	return &stagiaireRepo{db: db}
}

func (r *stagiaireRepo) Create(ctx context.Context, stagiaire *model.Stagiaire) error {
	return r.db.WithContext(ctx).Create(stagiaire).Error
}

func (r *stagiaireRepo) GetByID(ctx context.Context, id string) (*model.Stagiaire, error) {
	var stagiaire model.Stagiaire
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_debut DESC")
		}).
		Preload("Stages.Encadrant").
		Preload("Stages.Rapports").
		Where("stagiaire_id = ?", id).
		First(&stagiaire).Error
	if err != nil {
		return nil, err
	}
	return &stagiaire, nil
}

func (r *stagiaireRepo) GetByMatricule(ctx context.Context, matricule string) (*model.Stagiaire, error) {
	var stagiaire model.Stagiaire
	err := r.db.WithContext(ctx).
		Where("matricule = ?", matricule).
		First(&stagiaire).Error
	if err != nil {
		return nil, err
	}
	return &stagiaire, nil
}

func (r *stagiaireRepo) List(ctx context.Context, req *dto.ListStagiairesRequest) ([]model.Stagiaire, int64, error) {
	var stagiaires []model.Stagiaire
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Stagiaire{})

	if req.Recherche != "" {
		motif := "%" + req.Recherche + "%"
		db = db.Where(
			"nom ILIKE ? OR prenom ILIKE ? OR matricule ILIKE ? OR ecole ILIKE ?",
			motif, motif, motif, motif,
		)
	}
	if req.NiveauEtude != "" {
		db = db.Where("niveau_etude = ?", req.NiveauEtude)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("created_at DESC").
		Find(&stagiaires).Error
	if err != nil {
		return nil, 0, err
	}

	return stagiaires, total, nil
}

func (r *stagiaireRepo) Update(ctx context.Context, stagiaire *model.Stagiaire) error {
	return r.db.WithContext(ctx).Save(stagiaire).Error
}

func (r *stagiaireRepo) Delete(ctx context.Context, id string) error {
	// Les stages rattachés suivent par cascade de clé étrangère.
	return r.db.WithContext(ctx).
		Where("stagiaire_id = ?", id).
		Delete(&model.Stagiaire{}).Error
}

func (r *stagiaireRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Stagiaire{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		db = db.Where("stagiaire_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// NextMatricule tire le prochain numéro de la séquence dédiée. La séquence
// ne revenant jamais en arrière, deux créations concurrentes obtiennent
// toujours deux numéros distincts.
func (r *stagiaireRepo) NextMatricule(ctx context.Context) (int64, error) {
	var numero int64
	err := r.db.WithContext(ctx).
		Raw("SELECT nextval('stagiaires_matricule_seq')").
		Scan(&numero).Error
	return numero, err
}

func (r *stagiaireRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Stagiaire{}).Count(&count).Error
	return count, err
}
