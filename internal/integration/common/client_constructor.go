package common

import (
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	pkgHTTP "github.com/validalex/draft-backend/pkg/http"
)

const userAgent = "validalex-draft-backend"

// NewBaseConnector builds the outbound HTTP connector shared by the model
// gateway and job callbacks. Extra options are applied after the defaults.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithStaticHeader("User-Agent", userAgent),
	}
	return pkgHTTP.NewConnector(connCfg, append(opts, extra...)...)
}
