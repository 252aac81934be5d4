package export

import (
	"context"

	"github.com/validalex/draft-backend/internal/entity"
)

type ExportUsecase interface {
	Export(ctx context.Context, req *entity.ExportRequest, format entity.ExportFormat) (*entity.ExportResult, error)
	GetFile(ctx context.Context, name string) (*entity.StoredFile, error)
}
