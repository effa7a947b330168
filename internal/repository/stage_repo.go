package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
)

// StageRepository accès aux stages
type StageRepository interface {
	Create(ctx context.Context, stage *model.Stage) error
	GetByID(ctx context.Context, id string) (*model.Stage, error)
	List(ctx context.Context, req *dto.ListStagesRequest) ([]model.Stage, int64, error)
	ListAll(ctx context.Context) ([]model.Stage, error)
	Update(ctx context.Context, stage *model.Stage) error
	UpdateStatut(ctx context.Context, id, statut string) error
	Delete(ctx context.Context, id string) error
	CountOverlapping(ctx context.Context, stagiaireID string, debut, fin time.Time, excludeID string) (int64, error)
	ListNonValides(ctx context.Context) ([]model.Stage, error)
	ListSeTerminantEntre(ctx context.Context, debut, fin time.Time) ([]model.Stage, error)
	ListEnRetard(ctx context.Context, finAvant time.Time) ([]model.Stage, error)
	Count(ctx context.Context) (int64, error)
	CountByStatut(ctx context.Context) (map[string]int64, error)
	RepartitionMensuelle(ctx context.Context, depuis time.Time) ([]dto.RepartitionMensuelle, error)
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo crée un StageRepository
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepo) GetByID(ctx context.Context, id string) (*model.Stage, error) {
	var stage model.Stage
	err := r.db.WithContext(ctx).
		Preload("Stagiaire").
		Preload("Encadrant").
		Preload("Rapports").
		Where("stage_id = ?", id).
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *stageRepo) List(ctx context.Context, req *dto.ListStagesRequest) ([]model.Stage, int64, error) {
	var stages []model.Stage
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Stage{})

	if req.Recherche != "" {
		motif := "%" + req.Recherche + "%"
		db = db.Joins("JOIN stagiaires ON stagiaires.stagiaire_id = stages.stagiaire_id").
			Where(
				"stages.theme ILIKE ? OR stagiaires.nom ILIKE ? OR stagiaires.prenom ILIKE ? OR stagiaires.matricule ILIKE ?",
				motif, motif, motif, motif,
			)
	}
	if req.Statut != "" {
		db = db.Where("stages.statut = ?", req.Statut)
	}
	if req.TypeStage != "" {
		db = db.Where("stages.type_stage = ?", req.TypeStage)
	}
	if req.Direction != "" {
		db = db.Where("stages.direction = ?", req.Direction)
	}
	if req.StagiaireID != "" {
		db = db.Where("stages.stagiaire_id = ?", req.StagiaireID)
	}
	if req.EncadrantID != "" {
		db = db.Where("stages.encadrant_id = ?", req.EncadrantID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Stagiaire").
		Preload("Encadrant").
		Preload("Rapports").
		Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("stages.date_debut DESC").
		Find(&stages).Error
	if err != nil {
		return nil, 0, err
	}

	return stages, total, nil
}

// ListAll charge tous les stages avec leurs associations, pour les exports
// et le calendrier.
func (r *stageRepo) ListAll(ctx context.Context) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Preload("Stagiaire").
		Preload("Encadrant").
		Preload("Rapports").
		Order("date_debut DESC").
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Update(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *stageRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	return r.db.WithContext(ctx).Model(&model.Stage{}).
		Where("stage_id = ?", id).
		Update("statut", statut).Error
}

func (r *stageRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("stage_id = ?", id).
		Delete(&model.Stage{}).Error
}

// CountOverlapping compte les stages du stagiaire dont la période chevauche
// [debut, fin). Contrôle préalable seulement : la contrainte d'exclusion de
// la table reste l'arbitre en cas de course.
func (r *stageRepo) CountOverlapping(ctx context.Context, stagiaireID string, debut, fin time.Time, excludeID string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Stage{}).
		Where("stagiaire_id = ?", stagiaireID).
		Where("date_debut < ? AND date_fin > ?", fin, debut)
	if excludeID != "" {
		db = db.Where("stage_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// ListNonValides stages dont le statut reste recalculable
func (r *stageRepo) ListNonValides(ctx context.Context) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Where("statut <> ?", model.StatutValide).
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) ListSeTerminantEntre(ctx context.Context, debut, fin time.Time) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Preload("Stagiaire").
		Where("statut = ?", model.StatutEnCours).
		Where("date_fin >= ? AND date_fin <= ?", debut, fin).
		Order("date_fin ASC").
		Find(&stages).Error
	return stages, err
}

// ListEnRetard stages échus avant la date donnée et toujours sans rapport
// validé ; un rapport validé aurait fait passer le statut à Validé.
func (r *stageRepo) ListEnRetard(ctx context.Context, finAvant time.Time) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Preload("Stagiaire").
		Where("statut <> ?", model.StatutValide).
		Where("date_fin < ?", finAvant).
		Order("date_fin ASC").
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Stage{}).Count(&count).Error
	return count, err
}

func (r *stageRepo) CountByStatut(ctx context.Context) (map[string]int64, error) {
	var lignes []struct {
		Statut string
		Nb     int64
	}
	err := r.db.WithContext(ctx).Model(&model.Stage{}).
		Select("statut, COUNT(*) AS nb").
		Group("statut").
		Scan(&lignes).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(lignes))
	for _, l := range lignes {
		counts[l.Statut] = l.Nb
	}
	return counts, nil
}

func (r *stageRepo) RepartitionMensuelle(ctx context.Context, depuis time.Time) ([]dto.RepartitionMensuelle, error) {
	var lignes []struct {
		Mois    string
		NbStage int64
	}
	err := r.db.WithContext(ctx).Model(&model.Stage{}).
		Select("to_char(date_debut, 'YYYY-MM') AS mois, COUNT(*) AS nb_stage").
		Where("date_debut >= ?", depuis).
		Group("mois").
		Order("mois ASC").
		Scan(&lignes).Error
	if err != nil {
		return nil, err
	}

	repartition := make([]dto.RepartitionMensuelle, 0, len(lignes))
	for _, l := range lignes {
		repartition = append(repartition, dto.RepartitionMensuelle{Mois: l.Mois, NbStage: l.NbStage})
	}
	return repartition, nil
}
