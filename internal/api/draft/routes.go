package draft

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/validalex/draft-backend/internal/api/middleware"
	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
)

// RegisterRoutes registers draft routes. Guards such as auth run after the
// rate limiter, so rejected requests still count against the quota.
func RegisterRoutes(
	r chi.Router,
	h *Handler,
	limiter *ratelimit.Limiter,
	limits config.RateLimitConfig,
	guards ...func(http.Handler) http.Handler,
) {
	r.Route("/draft", func(r chi.Router) {
		limited := func(name string, limit int) chi.Router {
			rl := middleware.RateLimit(limiter, name, ratelimit.Rule{Limit: limit, Window: limits.Window})
			return r.With(append([]func(http.Handler) http.Handler{rl}, guards...)...)
		}

		limited("draft", limits.Draft).Post("/cobranca", h.Cobranca)
		limited("draft_validate", limits.Draft).Post("/cobrancaValidate", h.Validate)
		limited("draft_start", limits.Start).Post("/cobrancaStart", h.Start)
		limited("draft_status", limits.Status).Get("/cobrancaStatus", h.Status)
	})
}
