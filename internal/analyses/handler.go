package analyses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/documents"
	"assigncheck-backend/internal/shared/metrics"
	"assigncheck-backend/internal/shared/server/respond"
	"assigncheck-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

// analyze accepts JSON {"text"} or a multipart upload, runs the rubric
// analysis, and answers {"result"}. A provider failure still answers 200: the
// result field carries the explanatory message instead.
func (h *Handler) analyze(c *gin.Context) {
	text, err := documents.TextFromRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	metrics.IncAnalysisStarted()
	start := time.Now()
	outcome, err := h.Svc.Analyze(c.Request.Context(), text)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyText):
			respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze text", nil)
		}
		return
	}

	if outcome.Degraded {
		metrics.IncAnalysisDegraded()
		telemetry.Error("analysis.degraded", map[string]any{
			"reason":     outcome.Reason,
			"request_id": c.GetString("requestId"),
		})
	}

	respond.OK(c, gin.H{"result": outcome.Text})
}
