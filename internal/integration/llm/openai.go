package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/retry"
)

// OpenAIConnector generates drafts through the chat completions API.
type OpenAIConnector struct {
	client *openai.Client
	config config.LLMConfig
	logger *zap.Logger
}

func NewOpenAIConnector(cfg config.LLMConfig, logger *zap.Logger) *OpenAIConnector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxOutputChars <= 0 {
		cfg.MaxOutputChars = DefaultMaxOutputChars
	}

	return &OpenAIConnector{
		client: openai.NewClientWithConfig(clientCfg),
		config: cfg,
		logger: logger,
	}
}

// Generate sends the prompt and returns the raw model text.
func (c *OpenAIConnector) Generate(ctx context.Context, prompt *entity.Prompt) (*entity.ModelOutput, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	ctxzap.Info(ctx, "generating draft via OpenAI",
		zap.String("model", c.config.Model),
		zap.String("template_version", prompt.Meta.TemplateVersion),
	)

	start := time.Now()
	attempt := 0
	text, err := retry.Do(ctx, &c.config.Retry, isRetryable, func(ctx context.Context) (string, error) {
		attempt++
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			err = classifyOpenAIError(ctx, err)
			ctxzap.Warn(ctx, "OpenAI call failed", zap.Int("attempt", attempt), zap.Error(err))
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", entity.ErrModelEmpty
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, entity.ErrModelEmpty
	}

	text, truncated := truncateOutput(text, c.config.MaxOutputChars)

	ctxzap.Info(ctx, "draft generated",
		zap.Int64("elapsed_ms", elapsed.Milliseconds()),
		zap.Int("attempts", attempt),
		zap.Bool("truncated", truncated),
	)

	return &entity.ModelOutput{
		Text:      text,
		Model:     c.config.Model,
		ElapsedMs: elapsed.Milliseconds(),
		Truncated: truncated,
	}, nil
}

func classifyOpenAIError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return classifyStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return classifyStatus(reqErr.HTTPStatusCode, err)
	}
	return classifyTransport(ctx, err)
}
