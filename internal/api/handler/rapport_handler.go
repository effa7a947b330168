package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/service"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// RapportHandler handlers HTTP du module rapports
type RapportHandler struct {
	rapportSvc service.RapportService
}

// NewRapportHandler crée un RapportHandler
func NewRapportHandler(rapportSvc service.RapportService) *RapportHandler {
	return &RapportHandler{rapportSvc: rapportSvc}
}

// CreateRapport dépôt du rapport d'un stage
// POST /api/v1/rapports
// multipart/form-data : champ "stage_id" + fichier "fichier"
func (h *RapportHandler) CreateRapport(c *gin.Context) {
	var req dto.CreateRapportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
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

	rapport, err := h.rapportSvc.Create(c.Request.Context(), &req, header.Filename, header.Size, f)
	if err != nil {
		h.handleRapportError(c, err)
		return
	}

	response.Created(c, rapport)
}

// GetRapport détail d'un rapport
// GET /api/v1/rapports/:id
func (h *RapportHandler) GetRapport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du rapport est obligatoire")
		return
	}

	rapport, err := h.rapportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRapportError(c, err)
		return
	}

	response.OK(c, rapport)
}

// ListRapports liste paginée avec filtre d'état
// GET /api/v1/rapports
func (h *RapportHandler) ListRapports(c *gin.Context) {
	var req dto.ListRapportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.rapportSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ReplaceFile remplacement du fichier d'un rapport encore en attente
// PUT /api/v1/rapports/:id/fichier
// multipart/form-data, champ "fichier"
func (h *RapportHandler) ReplaceFile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du rapport est obligatoire")
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

	rapport, err := h.rapportSvc.ReplaceFile(c.Request.Context(), id, header.Filename, header.Size, f)
	if err != nil {
		h.handleRapportError(c, err)
		return
	}

	response.OK(c, rapport)
}

// Workflow validation ou archivage d'un rapport
// POST /api/v1/rapports/:id/workflow
func (h *RapportHandler) Workflow(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du rapport est obligatoire")
		return
	}

	var req dto.WorkflowRapportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "l'action doit être \"valider\" ou \"archiver\"")
		return
	}

	rapport, err := h.rapportSvc.Workflow(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRapportError(c, err)
		return
	}

	response.OK(c, rapport)
}

// DeleteRapport suppression d'un rapport encore en attente
// DELETE /api/v1/rapports/:id
func (h *RapportHandler) DeleteRapport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du rapport est obligatoire")
		return
	}

	if err := h.rapportSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRapportError(c, err)
		return
	}

	response.OK(c, nil)
}

// Download téléchargement du fichier du rapport
// GET /api/v1/rapports/:id/fichier
func (h *RapportHandler) Download(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du rapport est obligatoire")
		return
	}

	rc, filename, err := h.rapportSvc.Download(c.Request.Context(), id)
	if err != nil {
		h.handleRapportError(c, err)
		return
	}
	defer rc.Close()

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

// handleRapportError traduit les erreurs métier du module rapports
func (h *RapportHandler) handleRapportError(c *gin.Context, err error) {
	if fe, ok := apperrors.AsFieldErrors(err); ok {
		response.ValidationFailed(c, fe)
		return
	}
	if sc, ok := apperrors.AsStateConflict(err); ok {
		response.StateConflict(c, sc.Reason)
		return
	}
	if errors.Is(err, service.ErrRapportNotFound) {
		response.NotFound(c, 15001, "rapport introuvable")
		return
	}
	if errors.Is(err, service.ErrStageNotFound) {
		response.NotFound(c, 14001, "stage introuvable")
		return
	}
	response.InternalError(c)
}
