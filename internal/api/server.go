package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/api/docs"
	draftapi "github.com/validalex/draft-backend/internal/api/draft"
	exportapi "github.com/validalex/draft-backend/internal/api/export"
	"github.com/validalex/draft-backend/internal/api/middleware"
	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	draftHandler *draftapi.Handler,
	exportHandler *exportapi.Handler,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		exportapi.RegisterFileRoutes(r, exportHandler)

		// Auth runs behind the limiter so unauthenticated calls are counted.
		auth := middleware.Auth(cfg.AuthCfg)
		draftapi.RegisterRoutes(r, draftHandler, limiter, cfg.RateLimitCfg, auth)
		exportapi.RegisterRoutes(r, exportHandler, limiter, cfg.RateLimitCfg, auth)
	})

	return r
}
