package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/service"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// DashboardHandler handler HTTP du tableau de bord
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler crée un DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Resume synthèse chiffrée : effectifs, répartitions, alertes
// GET /api/v1/dashboard
func (h *DashboardHandler) Resume(c *gin.Context) {
	result, err := h.dashboardSvc.Resume(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
