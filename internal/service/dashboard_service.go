package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/pkg/redis"
)

const (
	dashboardCacheKey = "dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// debutAnneeCourante borne basse de la répartition mensuelle : la synthèse
// ne couvre que l'année civile en cours.
func debutAnneeCourante(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// DashboardService synthèse chiffrée de l'activité
type DashboardService interface {
	Resume(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	alerte AlerteService
	cache  *redis.Client
	logger *zap.Logger
}

// NewDashboardService crée un DashboardService. cache peut être nil, la
// synthèse est alors recalculée à chaque appel.
func NewDashboardService(repo *repository.Repository, alerte AlerteService, cache *redis.Client, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, alerte: alerte, cache: cache, logger: logger}
}

func (s *dashboardService) Resume(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.cache != nil {
		var cached dto.DashboardResponse
		if ok, err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	resp := &dto.DashboardResponse{}
	var err error

	if resp.NbStagiaires, err = s.repo.Stagiaire.Count(ctx); err != nil {
		s.logger.Error("comptage des stagiaires", zap.Error(err))
		return nil, err
	}
	if resp.NbEncadrants, err = s.repo.Encadrant.Count(ctx); err != nil {
		s.logger.Error("comptage des encadrants", zap.Error(err))
		return nil, err
	}
	if resp.NbStages, err = s.repo.Stage.Count(ctx); err != nil {
		s.logger.Error("comptage des stages", zap.Error(err))
		return nil, err
	}
	if resp.StagesParStatut, err = s.repo.Stage.CountByStatut(ctx); err != nil {
		s.logger.Error("répartition des stages par statut", zap.Error(err))
		return nil, err
	}
	if resp.RapportsParEtat, err = s.repo.Rapport.CountByEtat(ctx); err != nil {
		s.logger.Error("répartition des rapports par état", zap.Error(err))
		return nil, err
	}
	if resp.RepartitionMensuelle, err = s.repo.Stage.RepartitionMensuelle(ctx, debutAnneeCourante(time.Now())); err != nil {
		s.logger.Error("répartition mensuelle", zap.Error(err))
		return nil, err
	}

	alertes, err := s.alerte.Scan(ctx)
	if err != nil {
		return nil, err
	}
	resp.NbAlertes = len(alertes.Warnings) + len(alertes.Errors)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, resp, dashboardCacheTTL); err != nil {
			s.logger.Warn("mise en cache du tableau de bord", zap.Error(err))
		}
	}

	return resp, nil
}
