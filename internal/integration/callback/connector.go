package callback

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/integration/common"
	"github.com/validalex/draft-backend/internal/pkg/retry"
	pkghttp "github.com/validalex/draft-backend/pkg/http"
)

type Connector struct {
	config    config.CallbackConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.CallbackConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// SendJobResult delivers the terminal state of a job. Delivery failures are
// logged and otherwise ignored.
func (c *Connector) SendJobResult(ctx context.Context, callbackURL string, result *entity.JobResultDTO) {
	err := c.Send(ctx, callbackURL, &entity.CallbackEvent{
		Event: entity.CallbackEventFor(result.Status),
		JobID: result.JobID,
		Data:  result,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to send job callback", zap.String("job_id", result.JobID), zap.Error(err))
	}
}

func (c *Connector) Send(ctx context.Context, callbackURL string, event *entity.CallbackEvent) error {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	ctxzap.Debug(ctx, "sending callback event",
		zap.String("event_type", string(event.Event)),
		zap.String("callback_url", callbackURL),
		zap.String("job_id", event.JobID),
	)

	opts := []pkghttp.RequestOpt{
		pkghttp.WithHeader("X-Job-ID", event.JobID),
		pkghttp.WithURL(callbackURL),
	}

	_, err := retry.Do(ctx, &c.config.Retry, pkghttp.IsTransient, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.connector.DoRequest(ctx, http.MethodPost, "", event, nil, opts...)
	})
	if err != nil {
		return fmt.Errorf("failed to send callback, event_type: %s, url: %s, error: %w", event.Event, callbackURL, err)
	}

	ctxzap.Info(ctx, "callback sent successfully",
		zap.String("event_type", string(event.Event)),
		zap.String("callback_url", callbackURL),
		zap.String("job_id", event.JobID),
	)
	return nil
}
