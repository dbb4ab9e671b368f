package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/extract"
	"assigncheck-backend/internal/shared/metrics"
	"assigncheck-backend/internal/shared/server/respond"
	"assigncheck-backend/internal/shared/telemetry"
)

const maxUploadSize = 10 << 20 // 10MB

// ErrInvalidInput marks malformed extraction requests (missing file, missing
// text, bad JSON). Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Handler serves the extraction endpoint.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extractText)
}

// extractText accepts either a multipart upload or a JSON body that already
// carries text, and answers {"text": ...}. Decoder failures degrade into the
// text field rather than an error status.
func (h *Handler) extractText(c *gin.Context) {
	text, err := TextFromRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"text": text})
}

type textRequest struct {
	Text string `json:"text"`
}

// TextFromRequest resolves assignment text from a request by content-type
// negotiation: a multipart form carries a document to extract under the
// "file" field, anything else is a JSON body with a "text" field. One
// uploaded document yields exactly one text; extraction itself never fails.
func TextFromRequest(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return textFromUpload(c)
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", fmt.Errorf("%w: invalid request body", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return req.Text, nil
}

func textFromUpload(c *gin.Context) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}

	text := extract.FromBytes(data, fileHeader.Filename)
	metrics.IncExtract()
	telemetry.Info("extract.complete", map[string]any{
		"file_name":  fileHeader.Filename,
		"size_bytes": len(data),
		"text_chars": len(text),
		"request_id": c.GetString("requestId"),
	})
	return text, nil
}
