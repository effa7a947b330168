package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/internal/repository"
)

var (
	ErrExportAucunStage = errors.New("aucun stage à exporter")
)

// ExportService exports du registre des stages
//
// Deux sorties :
//   - registre Excel (.xlsx), une ligne par stage avec stagiaire et encadrant
//   - calendrier iCalendar (.ics), un événement par période de stage
type ExportService interface {
	ExportStages(ctx context.Context) (*bytes.Buffer, string, error)
	Calendrier(ctx context.Context) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService crée un ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var entetesExport = []string{
	"Matricule", "Stagiaire", "École", "Thème", "Type", "Statut",
	"Date début", "Date fin", "Direction", "Encadrant", "Rapport",
}

// ExportStages construit le registre Excel des stages. Retourne le contenu,
// un nom de fichier daté et une éventuelle erreur.
func (s *exportService) ExportStages(ctx context.Context) (*bytes.Buffer, string, error) {
	stages, err := s.repo.Stage.ListAll(ctx)
	if err != nil {
		s.logger.Error("chargement des stages pour export", zap.Error(err))
		return nil, "", err
	}
	if len(stages) == 0 {
		return nil, "", ErrExportAucunStage
	}

	f := excelize.NewFile()
	defer f.Close()

	const feuille = "Stages"
	f.SetSheetName("Sheet1", feuille)

	for col, titre := range entetesExport {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(feuille, cell, titre); err != nil {
			return nil, "", err
		}
	}

	styleEntete, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		debut, _ := excelize.CoordinatesToCellName(1, 1)
		fin, _ := excelize.CoordinatesToCellName(len(entetesExport), 1)
		_ = f.SetCellStyle(feuille, debut, fin, styleEntete)
	}

	for i := range stages {
		stage := &stages[i]
		ligne := []interface{}{
			"", "", "", stage.Theme, stage.TypeStage, stage.Statut,
			stage.DateDebut.Format(formatDate), stage.DateFin.Format(formatDate),
			stage.Direction, "", "",
		}
		if stage.Stagiaire != nil {
			ligne[0] = stage.Stagiaire.Matricule
			ligne[1] = stage.Stagiaire.Prenom + " " + stage.Stagiaire.Nom
			ligne[2] = stage.Stagiaire.Ecole
		}
		if stage.Encadrant != nil {
			ligne[9] = stage.Encadrant.Prenom + " " + stage.Encadrant.Nom
		}
		if len(stage.Rapports) > 0 {
			ligne[10] = stage.Rapports[0].Etat
		} else {
			ligne[10] = "Aucun"
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(feuille, cell, &ligne); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("génération du fichier Excel", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("stages_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// Calendrier sérialise les périodes de stage au format iCalendar. Les
// événements couvrent des journées entières ; DTEND est exclusif, d'où le
// jour ajouté à la date de fin.
func (s *exportService) Calendrier(ctx context.Context) (string, error) {
	stages, err := s.repo.Stage.ListAll(ctx)
	if err != nil {
		s.logger.Error("chargement des stages pour le calendrier", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StagINS//Calendrier des stages//FR")

	for i := range stages {
		stage := &stages[i]

		evt := cal.AddEvent(stage.StageID + "@stagins")
		evt.SetDtStampTime(time.Now())
		evt.SetAllDayStartAt(stage.DateDebut)
		evt.SetAllDayEndAt(stage.DateFin.AddDate(0, 0, 1))

		titre := stage.Theme
		if stage.Stagiaire != nil {
			titre = fmt.Sprintf("%s - %s %s", stage.Theme, stage.Stagiaire.Prenom, stage.Stagiaire.Nom)
		}
		evt.SetSummary(titre)

		description := "Statut: " + stage.Statut
		if stage.Encadrant != nil {
			description += "\nEncadrant: " + stage.Encadrant.Prenom + " " + stage.Encadrant.Nom
		}
		evt.SetDescription(description)

		if stage.Statut == model.StatutValide {
			evt.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize(), nil
}
