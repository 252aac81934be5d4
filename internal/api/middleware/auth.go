package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/response"
)

const TokenHeader = "X-Validalex-Token"

// Auth checks the shared token sent as "Authorization: Bearer <token>" or
// in X-Validalex-Token. With AcceptJWT, an HS256 token signed with the
// shared secret is accepted as well.
func Auth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authenticate(cfg, r); err != nil {
				status := http.StatusInternalServerError
				code := "AUTH_NOT_CONFIGURED"
				switch {
				case errors.Is(err, entity.ErrTokenMissing):
					status, code = http.StatusUnauthorized, "UNAUTHORIZED"
				case errors.Is(err, entity.ErrTokenInvalid):
					status, code = http.StatusForbidden, "FORBIDDEN"
				}
				ctxzap.Warn(r.Context(), "request rejected by auth", zap.Int("status", status))
				response.Error(w, status, code, err.Error(), "", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(cfg config.AuthConfig, r *http.Request) error {
	if cfg.SharedToken == "" {
		return entity.ErrAuthNotConfigured
	}

	token := requestToken(r)
	if token == "" {
		return entity.ErrTokenMissing
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.SharedToken)) == 1 {
		return nil
	}
	if cfg.AcceptJWT && strings.Count(token, ".") == 2 && validJWT(token, cfg) {
		return nil
	}
	return entity.ErrTokenInvalid
}

func requestToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}

func validJWT(token string, cfg config.AuthConfig) bool {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SharedToken), nil
	})
	return err == nil && parsed.Valid
}
