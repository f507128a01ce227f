package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/analytics"
	"recruit-backend/internal/applications"
	"recruit-backend/internal/intake"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
	"recruit-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo

	JobsService         *jobs.Service
	ApplicationsService *applications.Service
	IntakeService       *intake.Service
	AnalyticsService    *analytics.Service

	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	IntakeHandler       *intake.Handler
	AnalyticsHandler    *analytics.Handler

	Verifier *auth.Verifier
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Verifier: auth.NewVerifier(cfg.JWTSecret),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		Verifier:            app.Verifier,
		JobsHandler:         app.JobsHandler,
		ApplicationsHandler: app.ApplicationsHandler,
		IntakeHandler:       app.IntakeHandler,
		AnalyticsHandler:    app.AnalyticsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
	}

	app.JobsService = &jobs.Service{Repo: app.JobsRepo}
	app.ApplicationsService = &applications.Service{
		Repo:  app.ApplicationsRepo,
		Store: app.Store,
	}
	app.IntakeService = &intake.Service{
		Jobs:  app.JobsRepo,
		Apps:  app.ApplicationsRepo,
		Store: app.Store,
	}
	app.AnalyticsService = &analytics.Service{
		Jobs: app.JobsRepo,
		Apps: app.ApplicationsRepo,
	}

	app.JobsHandler = jobs.NewHandler(app.JobsService, app.Config.PublicBaseURL)
	app.ApplicationsHandler = applications.NewHandler(app.ApplicationsService)
	app.IntakeHandler = intake.NewHandler(app.IntakeService)
	app.AnalyticsHandler = analytics.NewHandler(app.AnalyticsService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
