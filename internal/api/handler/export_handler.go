package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/service"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// ExportHandler handlers HTTP des exports (tableur et calendrier)
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler crée un ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStages export de tous les stages en classeur Excel
// GET /api/v1/export/stages.xlsx
func (h *ExportHandler) ExportStages(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStages(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportAucunStage) {
			response.NotFound(c, 16001, "aucun stage à exporter")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Calendrier flux iCalendar des périodes de stage
// GET /api/v1/export/calendrier.ics
func (h *ExportHandler) Calendrier(c *gin.Context) {
	ics, err := h.exportSvc.Calendrier(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=stages.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
