package exports

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/shared/metrics"
	"assigncheck-backend/internal/shared/server/respond"
	"assigncheck-backend/internal/shared/telemetry"
)

// Handler serves the export endpoints.
type Handler struct {
	HTML *HTMLRenderer
}

// NewHandler constructs a Handler.
func NewHandler(html *HTMLRenderer) *Handler {
	return &Handler{HTML: html}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/export")
	grp.POST("/html", h.exportHTML)
	grp.POST("/pdf", h.exportPDF)
}

type exportRequest struct {
	Markdown string `json:"markdown"`
	Canary   string `json:"canary"`
}

func bindExport(c *gin.Context) (exportRequest, bool) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return req, false
	}
	if strings.TrimSpace(req.Markdown) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "markdown is required", nil)
		return req, false
	}
	return req, true
}

// exportHTML converts analysis Markdown into an HTML fragment the client can
// embed or save.
func (h *Handler) exportHTML(c *gin.Context) {
	req, ok := bindExport(c)
	if !ok {
		return
	}

	html, err := h.HTML.Render(req.Markdown)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render html", nil)
		return
	}
	respond.OK(c, gin.H{"html": html})
}

// exportPDF lays the analysis out as a downloadable PDF. An optional marker
// is embedded invisibly for provenance checks.
func (h *Handler) exportPDF(c *gin.Context) {
	req, ok := bindExport(c)
	if !ok {
		return
	}

	data, err := RenderPDF(req.Markdown, req.Canary)
	if err != nil {
		telemetry.Error("export.pdf_failed", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render pdf", nil)
		return
	}

	metrics.IncExportPDF()
	c.Header("Content-Disposition", `attachment; filename="ai-analysis.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
