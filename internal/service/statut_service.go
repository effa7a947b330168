package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/internal/rules"
)

// StatutService recalcul des statuts des stages
type StatutService interface {
	// RecalculerTous réaligne le statut de chaque stage non validé sur ses
	// dates. Idempotent : un second passage le même jour ne modifie rien.
	RecalculerTous(ctx context.Context) (*dto.RecalculStatutsResponse, error)
}

type statutService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatutService crée un StatutService
func NewStatutService(repo *repository.Repository, logger *zap.Logger) StatutService {
	return &statutService{repo: repo, logger: logger}
}

func (s *statutService) RecalculerTous(ctx context.Context) (*dto.RecalculStatutsResponse, error) {
	depart := time.Now()

	// Les stages Validé sont définitifs et restent hors du recalcul.
	stages, err := s.repo.Stage.ListNonValides(ctx)
	if err != nil {
		s.logger.Error("chargement des stages à recalculer", zap.Error(err))
		return nil, err
	}

	var modifies int64
	for i := range stages {
		stage := &stages[i]
		statut := rules.CalculerStatutStage(depart, stage.DateDebut, stage.DateFin, false)
		if statut == stage.Statut {
			continue
		}
		if err := s.repo.Stage.UpdateStatut(ctx, stage.StageID, statut); err != nil {
			s.logger.Error("mise à jour du statut",
				zap.String("stage_id", stage.StageID), zap.Error(err))
			return nil, err
		}
		modifies++
	}

	resp := &dto.RecalculStatutsResponse{
		StagesExamines: int64(len(stages)),
		StagesModifies: modifies,
		DureeMillis:    time.Since(depart).Milliseconds(),
	}

	s.logger.Info("recalcul des statuts terminé",
		zap.Int64("examines", resp.StagesExamines),
		zap.Int64("modifies", resp.StagesModifies),
		zap.Int64("duree_ms", resp.DureeMillis))

	return resp, nil
}
