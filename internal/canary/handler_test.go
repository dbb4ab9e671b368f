package canary_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/canary"
	"assigncheck-backend/internal/services/health"
	"assigncheck-backend/internal/shared/config"
	"assigncheck-backend/internal/shared/server"
)

func newCanaryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return server.NewRouter(server.RouterDeps{
		Config:        config.Config{JWTSecret: "test-secret"},
		Health:        health.NewService(nil),
		CanaryHandler: canary.NewHandler(),
	})
}

func postCanary(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInjectDetectEndpoints(t *testing.T) {
	router := newCanaryRouter(t)

	rec := postCanary(router, "/api/canary/inject", map[string]string{
		"text":   "Essay prompt for section 3.",
		"marker": "sec-3",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("inject: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var injected struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &injected); err != nil {
		t.Fatalf("decode inject response: %v", err)
	}
	if injected.Text == "Essay prompt for section 3." {
		t.Fatalf("expected marker bytes appended")
	}

	drec := postCanary(router, "/api/canary/detect", map[string]string{"text": injected.Text})
	if drec.Code != http.StatusOK {
		t.Fatalf("detect: expected 200, got %d: %s", drec.Code, drec.Body.String())
	}
	var detected struct {
		Marker string `json:"marker"`
		Found  bool   `json:"found"`
	}
	if err := json.Unmarshal(drec.Body.Bytes(), &detected); err != nil {
		t.Fatalf("decode detect response: %v", err)
	}
	if !detected.Found || detected.Marker != "sec-3" {
		t.Fatalf("unexpected detection %+v", detected)
	}
}

func TestDetectEndpointCleanText(t *testing.T) {
	router := newCanaryRouter(t)

	rec := postCanary(router, "/api/canary/detect", map[string]string{"text": "plain text"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var detected struct {
		Found bool `json:"found"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detected); err != nil {
		t.Fatalf("decode detect response: %v", err)
	}
	if detected.Found {
		t.Fatalf("unexpected detection in clean text")
	}
}

func TestInjectEndpointMissingMarker(t *testing.T) {
	router := newCanaryRouter(t)

	rec := postCanary(router, "/api/canary/inject", map[string]string{"text": "abc"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
