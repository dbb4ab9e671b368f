package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/analyses"
	"assigncheck-backend/internal/canary"
	"assigncheck-backend/internal/documents"
	"assigncheck-backend/internal/exports"
	"assigncheck-backend/internal/services/health"
	"assigncheck-backend/internal/shared/config"
	"assigncheck-backend/internal/shared/metrics"
	"assigncheck-backend/internal/shared/server/middleware"
	"assigncheck-backend/internal/shared/server/respond"
	"assigncheck-backend/internal/users"
)

// RouterDeps carries everything the router needs. Tests construct it
// directly with stub services.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	ExportsHandler   *exports.Handler
	CanaryHandler    *canary.Handler
	UsersHandler     *users.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	authMW := middleware.Auth([]byte(cfg.JWTSecret))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	r.GET("/metrics", metrics.Handler())

	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		analyze := api.Group("")
		analyze.Use(middleware.RateLimit(
			middleware.RateLimitRule{Rate: cfg.AnalyzeRate, Burst: cfg.AnalyzeBurst},
			middleware.NewRateLimiter(nil),
		))
		if cfg.AuthRequired {
			analyze.Use(authMW)
		}
		deps.AnalysisHandler.RegisterRoutes(analyze)
	}
	if deps.ExportsHandler != nil {
		deps.ExportsHandler.RegisterRoutes(api)
	}
	if deps.CanaryHandler != nil {
		deps.CanaryHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api, authMW)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
