package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/validalex/draft-backend/internal/api/middleware"
	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
)

// RegisterRoutes registers the rate limited export routes. Guards run after
// the limiter.
func RegisterRoutes(
	r chi.Router,
	h *Handler,
	limiter *ratelimit.Limiter,
	limits config.RateLimitConfig,
	guards ...func(http.Handler) http.Handler,
) {
	rl := middleware.RateLimit(limiter, "export", ratelimit.Rule{Limit: limits.Export, Window: limits.Window})
	limited := r.With(append([]func(http.Handler) http.Handler{rl}, guards...)...)

	// Flat paths so the public file route can share the /export prefix.
	limited.Post("/export/cobrancaDocx", h.Export(entity.FormatDOCX))
	limited.Post("/export/cobrancaPdf", h.Export(entity.FormatPDF))
	limited.Post("/export/cobranca/markdown", h.Export(entity.FormatMarkdown))
}

// RegisterFileRoutes registers the public download route for url-delivered
// exports. File names are random and expire with the store.
func RegisterFileRoutes(r chi.Router, h *Handler) {
	r.Get("/export/files/{name}", h.GetFile)
}
