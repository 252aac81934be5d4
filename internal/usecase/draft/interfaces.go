package draft

import (
	"context"

	"github.com/validalex/draft-backend/internal/entity"
)

type InputValidator interface {
	Validate(in *entity.PetitionInput) entity.ValidationResult
}

type PromptBuilder interface {
	Build(req *entity.DraftRequest) (*entity.Prompt, error)
}

type ModelClient interface {
	Generate(ctx context.Context, prompt *entity.Prompt) (*entity.ModelOutput, error)
}

type OutputParser interface {
	Parse(raw, templateVersion string) (*entity.ParsedOutput, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	Save(ctx context.Context, job *entity.Job) error
	Get(ctx context.Context, jobID string) (*entity.Job, error)
}

type CallbackSender interface {
	SendJobResult(ctx context.Context, callbackURL string, result *entity.JobResultDTO)
}
