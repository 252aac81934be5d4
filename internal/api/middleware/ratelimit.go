package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
	"github.com/validalex/draft-backend/internal/pkg/response"
)

type rateLimitedResponse struct {
	*entity.ErrorEnvelope
	RetryAfterMs int64 `json:"retryAfterMs"`
}

// RateLimit applies rule per client IP and route name. Rejected requests
// get 429 with Retry-After; nothing is queued.
func RateLimit(limiter *ratelimit.Limiter, route string, rule ratelimit.Rule) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Check(ClientIP(r)+":"+route, rule)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Milliseconds(), 10))

			if !d.Allowed {
				retrySec := int(math.Ceil(d.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(retrySec, 1)))
				ctxzap.Warn(r.Context(), "rate limit exceeded", zap.String("route", route))

				response.JSON(w, http.StatusTooManyRequests, rateLimitedResponse{
					ErrorEnvelope: response.NewErrorEnvelope(http.StatusTooManyRequests, "RATE_LIMIT",
						"Muitas requisições. Tente novamente em alguns instantes.", "", nil),
					RetryAfterMs: d.RetryAfter.Milliseconds(),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, or the remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
