package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
)

const MockModel = "mock"

// MockConnector returns a deterministic draft shaped by the section guidance
// found in the prompt. It never calls the network.
type MockConnector struct {
	logger *zap.Logger
	delay  time.Duration
}

func NewMockConnector(logger *zap.Logger, delay time.Duration) *MockConnector {
	return &MockConnector{logger: logger, delay: delay}
}

type mockPromptPayload struct {
	SectionGuidance map[entity.SectionKey]struct {
		MinParagraphs int `json:"minParagraphs"`
	} `json:"sectionGuidance"`
	Meta entity.PromptMeta `json:"meta"`
}

func (c *MockConnector) Generate(ctx context.Context, prompt *entity.Prompt) (*entity.ModelOutput, error) {
	ctxzap.Info(ctx, "generating draft via mock model")

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", entity.ErrModelTimeout, ctx.Err())
		}
	}

	var payload mockPromptPayload
	_ = json.Unmarshal([]byte(prompt.User), &payload)

	sections := make(map[string]string, len(entity.SectionKeys))
	for _, key := range entity.SectionKeys {
		count := 1
		if g, ok := payload.SectionGuidance[key]; ok && g.MinParagraphs > count {
			count = g.MinParagraphs
		}
		paragraphs := make([]string, 0, count)
		for i := 1; i <= count; i++ {
			paragraphs = append(paragraphs, fmt.Sprintf("%s: parágrafo %d de rascunho gerado localmente.", entity.SectionLabels[key], i))
		}
		sections[string(key)] = strings.Join(paragraphs, "\n\n")
	}

	templateVersion := payload.Meta.TemplateVersion
	if templateVersion == "" {
		templateVersion = prompt.Meta.TemplateVersion
	}

	body, err := json.Marshal(map[string]any{
		"sections": sections,
		"alerts": []map[string]string{{
			"level":   "info",
			"code":    "MOCK_MODEL",
			"message": "Rascunho gerado pelo modelo simulado.",
		}},
		"missing": []any{},
		"meta":    map[string]string{"templateVersion": templateVersion},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal mock output: %w", err)
	}

	return &entity.ModelOutput{
		Text:  string(body),
		Model: MockModel,
	}, nil
}
