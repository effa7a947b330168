package handler

import "github.com/TisTos-tass3/StagINS/internal/service"

// Handler point d'entrée de tous les handlers HTTP
type Handler struct {
	Auth      *AuthHandler
	Stagiaire *StagiaireHandler
	Encadrant *EncadrantHandler
	Stage     *StageHandler
	Rapport   *RapportHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler assemble les handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Stagiaire: NewStagiaireHandler(svc.Stagiaire),
		Encadrant: NewEncadrantHandler(svc.Encadrant),
		Stage:     NewStageHandler(svc.Stage, svc.Statut, svc.Alerte),
		Rapport:   NewRapportHandler(svc.Rapport),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}
