package draft

import (
	"context"

	"github.com/validalex/draft-backend/internal/entity"
)

type DraftUsecase interface {
	Validate(req *entity.DraftRequest) entity.ValidationResult
	Generate(ctx context.Context, req *entity.DraftRequest) (*entity.Envelope, error)
	Start(ctx context.Context, req *entity.DraftRequest) (*entity.StartDraftResponse, error)
	Status(ctx context.Context, jobID string) (*entity.Job, error)
}
