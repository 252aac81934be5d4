package export

import (
	"context"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/formatter"
)

type FormatterFactory interface {
	Create(format entity.ExportFormat) (formatter.Formatter, error)
}

type FileRepository interface {
	Put(ctx context.Context, file *entity.StoredFile) error
	Get(ctx context.Context, name string) (*entity.StoredFile, error)
}
