package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/analytics"
	"recruit-backend/internal/applications"
	"recruit-backend/internal/intake"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// RouterDeps carries everything the router needs to register routes.
type RouterDeps struct {
	Config              config.Config
	Verifier            *auth.Verifier
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	IntakeHandler       *intake.Handler
	AnalyticsHandler    *analytics.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	// Public form endpoints are gated only by the unguessable form id,
	// rate-limited by client IP.
	public := api.Group("/public")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"PUBLIC": {Rate: 1, Burst: 5},
		},
		DefaultGroup: "PUBLIC",
	}))
	deps.JobsHandler.RegisterPublicRoutes(public)
	deps.IntakeHandler.RegisterRoutes(public)

	company := api.Group("")
	company.Use(middleware.CompanyAuth(deps.Verifier))
	deps.JobsHandler.RegisterRoutes(company)
	deps.ApplicationsHandler.RegisterRoutes(company)
	deps.AnalyticsHandler.RegisterRoutes(company)

	evaluator := api.Group("/evaluator")
	evaluator.Use(middleware.EvaluatorAuth(deps.Config.EvaluatorToken))
	deps.ApplicationsHandler.RegisterEvaluatorRoutes(evaluator)

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
