package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/analyses"
	"assigncheck-backend/internal/canary"
	"assigncheck-backend/internal/documents"
	"assigncheck-backend/internal/exports"
	"assigncheck-backend/internal/llm"
	"assigncheck-backend/internal/llm/gemini"
	"assigncheck-backend/internal/services/health"
	"assigncheck-backend/internal/shared/config"
	"assigncheck-backend/internal/shared/server"
	"assigncheck-backend/internal/shared/storage/db"
	"assigncheck-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo users.Repo

	AnalysesService *analyses.Service
	UsersService    *users.Service

	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	ExportsHandler   *exports.Handler
	CanaryHandler    *canary.Handler
	UsersHandler     *users.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app, llmClient)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Health:           health.NewService(app.DB),
		DocumentsHandler: app.DocumentsHandler,
		AnalysisHandler:  app.AnalysisHandler,
		ExportsHandler:   app.ExportsHandler,
		CanaryHandler:    app.CanaryHandler,
		UsersHandler:     app.UsersHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.SQLitePath) == "" {
		log.Printf("bootstrap: SQLITE_PATH empty; using in-memory repositories")
		return nil, nil
	}

	sqlDB, err := db.Open(ctx, cfg.SQLitePath, db.DefaultOptions())
	if err == nil {
		if merr := db.RunMigrations(ctx, sqlDB); merr != nil {
			sqlDB.Close()
			err = merr
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database open failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("open database: %w", err)
	}
	return sqlDB, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; analyses will report a configuration error")
		return llm.PlaceholderClient{}, nil
	}
	return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
}

func buildServices(app *App, llmClient llm.Client) {
	var userRepo users.Repo
	if app.DB != nil {
		userRepo = users.NewSQLRepo(app.DB)
	} else {
		userRepo = users.NewMemoryRepo()
	}

	analysisSvc := analyses.NewService(llmClient)
	userSvc := users.NewService(userRepo, []byte(app.Config.JWTSecret))

	app.UsersRepo = userRepo
	app.AnalysesService = analysisSvc
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler()
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
	app.ExportsHandler = exports.NewHandler(exports.NewHTMLRenderer())
	app.CanaryHandler = canary.NewHandler()
	app.UsersHandler = users.NewHandler(userSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
