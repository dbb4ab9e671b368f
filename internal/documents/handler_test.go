package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/documents"
	"assigncheck-backend/internal/services/health"
	"assigncheck-backend/internal/shared/config"
	"assigncheck-backend/internal/shared/server"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return server.NewRouter(server.RouterDeps{
		Config:           config.Config{JWTSecret: "test-secret"},
		Health:           health.NewService(nil),
		DocumentsHandler: documents.NewHandler(),
	})
}

func postMultipart(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeText(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Text
}

func TestExtractTxtUpload(t *testing.T) {
	router := newTestRouter(t)

	rec := postMultipart(t, router, "prompt.txt", "Design a survey for your classmates.")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeText(t, rec); got != "Design a survey for your classmates." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractUnsupportedTypeStill200(t *testing.T) {
	router := newTestRouter(t)

	rec := postMultipart(t, router, "prompt.png", "binary bytes")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeText(t, rec); got != "(Unsupported file type)" {
		t.Fatalf("expected unsupported placeholder, got %q", got)
	}
}

func TestExtractCorruptDocxStill200(t *testing.T) {
	router := newTestRouter(t)

	rec := postMultipart(t, router, "prompt.docx", "not a zip")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeText(t, rec); !strings.HasPrefix(got, "(Error extracting text:") {
		t.Fatalf("expected extraction error placeholder, got %q", got)
	}
}

func TestExtractJSONBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/extract",
		strings.NewReader(`{"text":"Already extracted text."}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeText(t, rec); got != "Already extracted text." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractMissingFile(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("other", "value"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
