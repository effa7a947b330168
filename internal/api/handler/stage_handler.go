package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/service"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// StageHandler handlers HTTP du module stages
type StageHandler struct {
	stageSvc  service.StageService
	statutSvc service.StatutService
	alerteSvc service.AlerteService
}

// NewStageHandler crée un StageHandler
func NewStageHandler(stageSvc service.StageService, statutSvc service.StatutService, alerteSvc service.AlerteService) *StageHandler {
	return &StageHandler{stageSvc: stageSvc, statutSvc: statutSvc, alerteSvc: alerteSvc}
}

// CreateStage création d'un stage (statut calculé par le serveur)
// POST /api/v1/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	stage, err := h.stageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.Created(c, stage)
}

// GetStage détail d'un stage avec stagiaire, encadrant et rapport
// GET /api/v1/stages/:id
func (h *StageHandler) GetStage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stage est obligatoire")
		return
	}

	stage, err := h.stageSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, stage)
}

// ListStages liste paginée avec recherche et filtres
// GET /api/v1/stages
func (h *StageHandler) ListStages(c *gin.Context) {
	var req dto.ListStagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.stageSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateStage mise à jour partielle, refusée si le rapport est validé
// PUT /api/v1/stages/:id
func (h *StageHandler) UpdateStage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stage est obligatoire")
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	stage, err := h.stageSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, stage)
}

// DeleteStage suppression, refusée si le rapport est validé
// DELETE /api/v1/stages/:id
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stage est obligatoire")
		return
	}

	if err := h.stageSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, nil)
}

// UploadLettre téléversement de la lettre d'acceptation (PDF)
// PUT /api/v1/stages/:id/lettre
// multipart/form-data, champ "fichier"
func (h *StageHandler) UploadLettre(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stage est obligatoire")
		return
	}

	header, err := c.FormFile("fichier")
	if err != nil {
		response.BadRequest(c, 10001, "le fichier est obligatoire (champ \"fichier\")")
		return
	}

	f, err := header.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	stage, err := h.stageSvc.UploadLettre(c.Request.Context(), id, header.Filename, header.Size, f)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, stage)
}

// Attestation données de l'attestation de fin de stage
// GET /api/v1/stages/:id/attestation
// Disponible uniquement pour un stage au statut Validé.
func (h *StageHandler) Attestation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stage est obligatoire")
		return
	}

	attestation, err := h.stageSvc.Attestation(c.Request.Context(), id)
	if err != nil {
		h.handleStageError(c, err)
		return
	}

	response.OK(c, attestation)
}

// Alertes stages proches de leur fin ou en retard de rapport
// GET /api/v1/stages/alertes
func (h *StageHandler) Alertes(c *gin.Context) {
	alertes, err := h.alerteSvc.Scan(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, alertes)
}

// RecalculerStatuts recalcul immédiat des statuts de tous les stages
// POST /api/v1/stages/statuts/recalculer
func (h *StageHandler) RecalculerStatuts(c *gin.Context) {
	result, err := h.statutSvc.RecalculerTous(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleStageError traduit les erreurs métier du module stages
func (h *StageHandler) handleStageError(c *gin.Context, err error) {
	if fe, ok := apperrors.AsFieldErrors(err); ok {
		response.ValidationFailed(c, fe)
		return
	}
	if sc, ok := apperrors.AsStateConflict(err); ok {
		response.StateConflict(c, sc.Reason)
		return
	}
	if errors.Is(err, service.ErrStageNotFound) {
		response.NotFound(c, 14001, "stage introuvable")
		return
	}
	response.InternalError(c)
}
