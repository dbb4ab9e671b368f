package canary

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/shared/server/respond"
)

// Handler serves the watermark endpoints.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches canary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/canary")
	grp.POST("/inject", h.inject)
	grp.POST("/detect", h.detect)
}

type injectRequest struct {
	Text   string `json:"text"`
	Marker string `json:"marker"`
}

// inject appends an invisible encoding of the marker to the text. The
// returned text renders identically to the input.
func (h *Handler) inject(c *gin.Context) {
	var req injectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Text == "" || strings.TrimSpace(req.Marker) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text and marker are required", nil)
		return
	}
	respond.OK(c, gin.H{"text": Inject(req.Text, req.Marker)})
}

type detectRequest struct {
	Text string `json:"text"`
}

// detect reports whether the text carries an embedded marker and, if so,
// which one.
func (h *Handler) detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	marker, found := Detect(req.Text)
	respond.OK(c, gin.H{"marker": marker, "found": found})
}
