package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/blog-engagement-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

var exportContentTypes = map[string]string{
	service.FormatNDJSON: "application/x-ndjson",
	service.FormatJSON:   "application/json",
	service.FormatCSV:    "text/csv",
}

// ExportComments handles GET /v1/exports/comments/:id?format=...
func (h *ExportHandler) ExportComments(c *gin.Context) {
	id := c.Param("id")

	format := c.Query("format")
	if format == "" {
		format = service.FormatNDJSON
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json, csv"})
		return
	}

	var buf bytes.Buffer
	count, err := h.services.Export.ExportComments(c.Request.Context(), &buf, id, format)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Str("article_id", id).Str("format", format).Int("count", count).Msg("Comments exported")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comments-%s.%s", id, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
