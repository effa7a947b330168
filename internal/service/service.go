package service

import (
	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/config"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/pkg/jwt"
	"github.com/TisTos-tass3/StagINS/pkg/redis"
	"github.com/TisTos-tass3/StagINS/pkg/storage"
)

// Service point d'entrée de la couche métier
type Service struct {
	Auth      AuthService
	Stagiaire StagiaireService
	Encadrant EncadrantService
	Stage     StageService
	Rapport   RapportService
	Statut    StatutService
	Alerte    AlerteService
	Dashboard DashboardService
	Export    ExportService
}

// NewService assemble les services. cache peut être nil : les services
// concernés fonctionnent alors sans cache ni liste noire.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	files storage.FileStorage,
	logger *zap.Logger,
) *Service {
	alerte := NewAlerteService(repo, logger)

	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, cache, logger),
		Stagiaire: NewStagiaireService(repo, logger),
		Encadrant: NewEncadrantService(repo, logger),
		Stage:     NewStageService(repo, files, logger),
		Rapport:   NewRapportService(repo, files, logger),
		Statut:    NewStatutService(repo, logger),
		Alerte:    alerte,
		Dashboard: NewDashboardService(repo, alerte, cache, logger),
		Export:    NewExportService(repo, logger),
	}
}
