package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/integration/common"
	"github.com/validalex/draft-backend/internal/pkg/retry"
	pkghttp "github.com/validalex/draft-backend/pkg/http"
)

// GatewayConnector talks to an internal text-generation gateway that wraps
// the model vendor.
type GatewayConnector struct {
	config    config.LLMConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

type gatewayRequest struct {
	Model       string            `json:"model"`
	Temperature float32           `json:"temperature"`
	System      string            `json:"system"`
	User        string            `json:"user"`
	Meta        entity.PromptMeta `json:"meta"`
}

type gatewayResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

func NewGatewayConnector(cfg config.LLMConfig, logger *zap.Logger) *GatewayConnector {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxOutputChars <= 0 {
		cfg.MaxOutputChars = DefaultMaxOutputChars
	}
	return &GatewayConnector{
		connector: common.NewBaseConnector(cfg.GatewayCfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate sends the prompt to the gateway and returns the raw model text.
func (c *GatewayConnector) Generate(ctx context.Context, prompt *entity.Prompt) (*entity.ModelOutput, error) {
	ctxzap.Info(ctx, "generating draft via LLM gateway", zap.String("model", c.config.Model))

	req := &gatewayRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		System:      prompt.System,
		User:        prompt.User,
		Meta:        prompt.Meta,
	}

	start := time.Now()
	resp, err := retry.Do(ctx, &c.config.Retry, isRetryable, func(ctx context.Context) (*gatewayResponse, error) {
		var out gatewayResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &out); err != nil {
			return nil, classifyGatewayError(ctx, err)
		}
		return &out, nil
	})
	elapsed := time.Since(start)
	if err != nil {
		ctxzap.Error(ctx, "LLM gateway call failed", zap.Error(err))
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, entity.ErrModelEmpty
	}
	text, truncated := truncateOutput(text, c.config.MaxOutputChars)

	model := resp.Model
	if model == "" {
		model = c.config.Model
	}

	ctxzap.Info(ctx, "draft generated", zap.Int64("elapsed_ms", elapsed.Milliseconds()), zap.Bool("truncated", truncated))

	return &entity.ModelOutput{
		Text:      text,
		Model:     model,
		ElapsedMs: elapsed.Milliseconds(),
		Truncated: truncated,
	}, nil
}

func classifyGatewayError(ctx context.Context, err error) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return classifyStatus(httpErr.StatusCode, err)
	}
	return classifyTransport(ctx, err)
}
