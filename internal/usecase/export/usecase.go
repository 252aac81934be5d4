package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/validator"
)

// FilesRoute is where url-delivered exports are served from.
const FilesRoute = "/api/export/files/"

type Options struct {
	DefaultDelivery entity.ExportDelivery
	PublicBaseURL   string
}

// ExportUsecase renders validated petition sections into documents.
type ExportUsecase struct {
	formatters FormatterFactory
	files      FileRepository
	opts       Options
	logger     *zap.Logger
	now        func() time.Time
}

func NewUsecase(formatters FormatterFactory, files FileRepository, opts Options, logger *zap.Logger) *ExportUsecase {
	if opts.DefaultDelivery == "" {
		opts.DefaultDelivery = entity.DeliveryInline
	}
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &ExportUsecase{
		formatters: formatters,
		files:      files,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Export validates req, renders it in format and delivers it inline or
// through the ephemeral file store.
func (uc *ExportUsecase) Export(ctx context.Context, req *entity.ExportRequest, format entity.ExportFormat) (*entity.ExportResult, error) {
	start := uc.now()

	doc, err := validator.ValidateExportRequest(req)
	if err != nil {
		return nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(doc)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	filename := fmt.Sprintf("acao_cobranca_%d%s", start.UnixMilli(), f.FileExtension())
	result := &entity.ExportResult{
		OK:          true,
		Filename:    filename,
		ContentType: f.ContentType(),
		Size:        len(data),
	}

	delivery := req.Delivery
	if delivery == "" {
		delivery = uc.opts.DefaultDelivery
	}

	switch delivery {
	case entity.DeliveryURL:
		name := uuid.NewString() + f.FileExtension()
		err := uc.files.Put(ctx, &entity.StoredFile{
			Name:        name,
			ContentType: f.ContentType(),
			Data:        data,
		})
		if err != nil {
			return nil, fmt.Errorf("store export: %w", err)
		}
		result.URL = uc.opts.PublicBaseURL + FilesRoute + name
	default:
		result.Base64 = base64.StdEncoding.EncodeToString(data)
	}

	ms := uc.now().Sub(start).Milliseconds()
	result.Meta = map[string]any{
		"ms":              ms,
		"format":          string(format),
		"delivery":        string(delivery),
		"templateVersion": req.TemplateVersion,
	}

	ctxzap.Info(ctx, "export rendered",
		zap.String("format", string(format)),
		zap.String("delivery", string(delivery)),
		zap.Int("size", len(data)),
		zap.Int64("ms", ms),
	)
	return result, nil
}

// GetFile returns a previously stored export.
func (uc *ExportUsecase) GetFile(ctx context.Context, name string) (*entity.StoredFile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: file name", entity.ErrMissingField)
	}
	return uc.files.Get(ctx, name)
}
