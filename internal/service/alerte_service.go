package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
)

// Seuils des alertes
const (
	// SeuilFinProche fenêtre d'avertissement avant la fin d'un stage
	SeuilFinProche = 7 * 24 * time.Hour
	// SeuilRetard délai après la fin au-delà duquel l'absence de rapport
	// validé devient bloquante
	SeuilRetard = 30 * 24 * time.Hour
)

// AlerteService signalements sur les stages demandant une action
type AlerteService interface {
	// Scan relève les stages en fin de période (warning) et les stages échus
	// depuis plus de trente jours sans rapport validé (error).
	Scan(ctx context.Context) (*dto.AlertesResponse, error)
}

type alerteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAlerteService crée un AlerteService
func NewAlerteService(repo *repository.Repository, logger *zap.Logger) AlerteService {
	return &alerteService{repo: repo, logger: logger}
}

func (s *alerteService) Scan(ctx context.Context) (*dto.AlertesResponse, error) {
	aujourdhui := time.Now().Truncate(24 * time.Hour)

	finissants, err := s.repo.Stage.ListSeTerminantEntre(ctx, aujourdhui, aujourdhui.Add(SeuilFinProche))
	if err != nil {
		s.logger.Error("relevé des stages en fin de période", zap.Error(err))
		return nil, err
	}

	enRetard, err := s.repo.Stage.ListEnRetard(ctx, aujourdhui.Add(-SeuilRetard))
	if err != nil {
		s.logger.Error("relevé des stages en retard", zap.Error(err))
		return nil, err
	}

	resp := &dto.AlertesResponse{
		Warnings: make([]dto.AlerteResponse, 0, len(finissants)),
		Errors:   make([]dto.AlerteResponse, 0, len(enRetard)),
	}

	for i := range finissants {
		stage := &finissants[i]
		alerte := toAlerte(stage, dto.AlerteWarning)
		jours := int(stage.DateFin.Sub(aujourdhui).Hours() / 24)
		alerte.Message = fmt.Sprintf("Le stage se termine dans %d jour(s).", jours)
		resp.Warnings = append(resp.Warnings, alerte)
	}

	for i := range enRetard {
		stage := &enRetard[i]
		alerte := toAlerte(stage, dto.AlerteError)
		alerte.JoursRetard = int(aujourdhui.Sub(stage.DateFin).Hours() / 24)
		alerte.Message = fmt.Sprintf(
			"Stage terminé depuis %d jours sans rapport validé.", alerte.JoursRetard)
		resp.Errors = append(resp.Errors, alerte)
	}

	return resp, nil
}

func toAlerte(stage *model.Stage, niveau string) dto.AlerteResponse {
	alerte := dto.AlerteResponse{
		Niveau:  niveau,
		StageID: stage.StageID,
		Theme:   stage.Theme,
		DateFin: stage.DateFin.Format(formatDate),
	}
	if stage.Stagiaire != nil {
		alerte.Stagiaire = stage.Stagiaire.Prenom + " " + stage.Stagiaire.Nom
		alerte.Matricule = stage.Stagiaire.Matricule
	}
	return alerte
}
