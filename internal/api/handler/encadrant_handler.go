package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/service"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// EncadrantHandler handlers HTTP du module encadrants
type EncadrantHandler struct {
	encadrantSvc service.EncadrantService
}

// NewEncadrantHandler crée un EncadrantHandler
func NewEncadrantHandler(encadrantSvc service.EncadrantService) *EncadrantHandler {
	return &EncadrantHandler{encadrantSvc: encadrantSvc}
}

// CreateEncadrant création d'un encadrant
// POST /api/v1/encadrants
func (h *EncadrantHandler) CreateEncadrant(c *gin.Context) {
	var req dto.CreateEncadrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	encadrant, err := h.encadrantSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEncadrantError(c, err)
		return
	}

	response.Created(c, encadrant)
}

// GetEncadrant fiche d'un encadrant avec son nombre de stages
// GET /api/v1/encadrants/:id
func (h *EncadrantHandler) GetEncadrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant de l'encadrant est obligatoire")
		return
	}

	encadrant, err := h.encadrantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEncadrantError(c, err)
		return
	}

	response.OK(c, encadrant)
}

// ListEncadrants liste paginée avec recherche et filtre institution
// GET /api/v1/encadrants
func (h *EncadrantHandler) ListEncadrants(c *gin.Context) {
	var req dto.ListEncadrantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.encadrantSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateEncadrant mise à jour partielle
// PUT /api/v1/encadrants/:id
func (h *EncadrantHandler) UpdateEncadrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant de l'encadrant est obligatoire")
		return
	}

	var req dto.UpdateEncadrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	encadrant, err := h.encadrantSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEncadrantError(c, err)
		return
	}

	response.OK(c, encadrant)
}

// DeleteEncadrant suppression, refusée si des stages lui sont rattachés
// DELETE /api/v1/encadrants/:id
func (h *EncadrantHandler) DeleteEncadrant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant de l'encadrant est obligatoire")
		return
	}

	if err := h.encadrantSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEncadrantError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEncadrantError traduit les erreurs métier du module encadrants
func (h *EncadrantHandler) handleEncadrantError(c *gin.Context, err error) {
	if fe, ok := apperrors.AsFieldErrors(err); ok {
		response.ValidationFailed(c, fe)
		return
	}
	if sc, ok := apperrors.AsStateConflict(err); ok {
		response.StateConflict(c, sc.Reason)
		return
	}
	if errors.Is(err, service.ErrEncadrantNotFound) {
		response.NotFound(c, 13001, "encadrant introuvable")
		return
	}
	response.InternalError(c)
}
