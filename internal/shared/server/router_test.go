package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/analyses"
	"assigncheck-backend/internal/services/health"
	"assigncheck-backend/internal/shared/auth"
	"assigncheck-backend/internal/shared/config"
	"assigncheck-backend/internal/shared/server"
)

type fixedLLM struct{}

func (fixedLLM) Generate(context.Context, string) (string, error) {
	return "analysis text", nil
}

func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "router-test-secret"
	}
	if cfg.AnalyzeRate == 0 {
		cfg.AnalyzeRate = 1000
		cfg.AnalyzeBurst = 1000
	}

	svc := analyses.NewService(fixedLLM{})
	return server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(nil),
		AnalysisHandler: analyses.NewHandler(svc),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newRouter(t, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health payload %s", rec.Body.String())
	}
}

func TestAnalyzePublicByDefault(t *testing.T) {
	router := newRouter(t, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":"prompt"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeAuthRequired(t *testing.T) {
	cfg := config.Config{AuthRequired: true, JWTSecret: "router-test-secret"}
	router := newRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":"prompt"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := auth.Sign("1", "a@b.com", []byte(cfg.JWTSecret), auth.DefaultTTL)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":"prompt"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoute404(t *testing.T) {
	router := newRouter(t, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
