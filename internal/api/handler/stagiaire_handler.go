package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/service"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// StagiaireHandler handlers HTTP du module stagiaires
type StagiaireHandler struct {
	stagiaireSvc service.StagiaireService
}

// NewStagiaireHandler crée un StagiaireHandler
func NewStagiaireHandler(stagiaireSvc service.StagiaireService) *StagiaireHandler {
	return &StagiaireHandler{stagiaireSvc: stagiaireSvc}
}

// CreateStagiaire création d'un stagiaire (matricule attribué par le serveur)
// POST /api/v1/stagiaires
func (h *StagiaireHandler) CreateStagiaire(c *gin.Context) {
	var req dto.CreateStagiaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	stagiaire, err := h.stagiaireSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStagiaireError(c, err)
		return
	}

	response.Created(c, stagiaire)
}

// GetStagiaire fiche détaillée d'un stagiaire avec ses stages
// GET /api/v1/stagiaires/:id
func (h *StagiaireHandler) GetStagiaire(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stagiaire est obligatoire")
		return
	}

	stagiaire, err := h.stagiaireSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStagiaireError(c, err)
		return
	}

	response.OK(c, stagiaire)
}

// GetStagiaireByMatricule recherche directe par matricule
// GET /api/v1/stagiaires/matricule/:matricule
func (h *StagiaireHandler) GetStagiaireByMatricule(c *gin.Context) {
	matricule := c.Param("matricule")
	if matricule == "" {
		response.BadRequest(c, 10001, "le matricule est obligatoire")
		return
	}

	stagiaire, err := h.stagiaireSvc.GetByMatricule(c.Request.Context(), matricule)
	if err != nil {
		h.handleStagiaireError(c, err)
		return
	}

	response.OK(c, stagiaire)
}

// ListStagiaires liste paginée avec recherche et filtres
// GET /api/v1/stagiaires
func (h *StagiaireHandler) ListStagiaires(c *gin.Context) {
	var req dto.ListStagiairesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.stagiaireSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateStagiaire mise à jour partielle (le matricule reste immuable)
// PUT /api/v1/stagiaires/:id
func (h *StagiaireHandler) UpdateStagiaire(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stagiaire est obligatoire")
		return
	}

	var req dto.UpdateStagiaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	stagiaire, err := h.stagiaireSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStagiaireError(c, err)
		return
	}

	response.OK(c, stagiaire)
}

// DeleteStagiaire suppression, refusée si un rapport validé existe
// DELETE /api/v1/stagiaires/:id
func (h *StagiaireHandler) DeleteStagiaire(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "l'identifiant du stagiaire est obligatoire")
		return
	}

	if err := h.stagiaireSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStagiaireError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleStagiaireError traduit les erreurs métier du module stagiaires
func (h *StagiaireHandler) handleStagiaireError(c *gin.Context, err error) {
	if fe, ok := apperrors.AsFieldErrors(err); ok {
		response.ValidationFailed(c, fe)
		return
	}
	if sc, ok := apperrors.AsStateConflict(err); ok {
		response.StateConflict(c, sc.Reason)
		return
	}
	if errors.Is(err, service.ErrStagiaireNotFound) {
		response.NotFound(c, 12001, "stagiaire introuvable")
		return
	}
	response.InternalError(c)
}
