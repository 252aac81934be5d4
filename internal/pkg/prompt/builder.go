package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/guidance"
)

const (
	DefaultPromptVersion = "2.0"
	DefaultMaxFieldChars = 8000

	PendingPlaceholder = "[PENDENTE – INFORMAÇÃO NÃO FORNECIDA]"

	task = "Gerar rascunho técnico, robusto e juridicamente elaborado de Ação de Cobrança."
)

// TemplateLoader resolves section guidance by template version.
type TemplateLoader interface {
	Load(version string) (*guidance.Template, error)
}

// Options tunes a Builder. Zero values fall back to the package defaults.
type Options struct {
	MaxFieldChars   int
	TemplateVersion string
	PromptVersion   string
}

type Builder struct {
	templates TemplateLoader
	opts      Options
}

func NewBuilder(templates TemplateLoader, opts Options) *Builder {
	if opts.MaxFieldChars <= 0 {
		opts.MaxFieldChars = DefaultMaxFieldChars
	}
	if opts.TemplateVersion == "" {
		opts.TemplateVersion = guidance.DefaultTemplateVersion
	}
	if opts.PromptVersion == "" {
		opts.PromptVersion = DefaultPromptVersion
	}
	return &Builder{templates: templates, opts: opts}
}

type userPayload struct {
	Task            string                      `json:"task"`
	InputData       entity.PetitionInput        `json:"inputData"`
	SectionGuidance map[string]guidance.Section `json:"sectionGuidance"`
	Meta            entity.PromptMeta           `json:"meta"`
}

// Build turns a draft request into the system/user instruction pair.
// A template that cannot be loaded is fatal.
func (b *Builder) Build(req *entity.DraftRequest) (*entity.Prompt, error) {
	if req == nil {
		req = &entity.DraftRequest{}
	}

	meta := entity.PromptMeta{
		PromptVersion:   orDefault(req.PromptVersion, b.opts.PromptVersion),
		TemplateVersion: orDefault(req.TemplateVersion, b.opts.TemplateVersion),
	}

	tpl, err := b.templates.Load(meta.TemplateVersion)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar template %s: %w", meta.TemplateVersion, err)
	}

	sg := make(map[string]guidance.Section, len(entity.SectionKeys))
	for k, s := range tpl.WithDefaults() {
		sg[string(k)] = s
	}

	user, err := json.Marshal(userPayload{
		Task:            task,
		InputData:       req.Data.Truncated(b.opts.MaxFieldChars),
		SectionGuidance: sg,
		Meta:            meta,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user prompt: %w", err)
	}

	return &entity.Prompt{
		System: systemPrompt(meta),
		User:   string(user),
		Meta:   meta,
	}, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
