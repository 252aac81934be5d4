package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/logger"
	"github.com/validalex/draft-backend/internal/pkg/response"
)

const maxBodyBytes = 2 << 20

type Handler struct {
	usecase ExportUsecase
}

func NewHandler(usecase ExportUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Export returns the handler for one of the POST /api/export/* routes
func (h *Handler) Export(format entity.ExportFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.AddFields(r.Context(),
			zap.String("action", "Export"),
			zap.String("format", string(format)),
		)

		var req entity.ExportRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido.", err.Error(), nil)
			return
		}

		result, err := h.usecase.Export(ctx, &req, format)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}

		response.Success(w, result)
	}
}

// GetFile handles GET /api/export/files/{name}
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := logger.AddFields(r.Context(),
		zap.String("action", "GetExportFile"),
		zap.String("file", name),
	)

	file, err := h.usecase.GetFile(ctx, name)
	if err != nil {
		if errors.Is(err, entity.ErrFileNotFound) {
			response.Error(w, http.StatusNotFound, "FILE_NOT_FOUND", "Arquivo não encontrado ou expirado.", "", nil)
			return
		}
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		ctxzap.Warn(ctx, "failed to write file", zap.Error(err))
	}
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidSections),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField):
		ctxzap.Warn(ctx, "invalid export request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "INVALID_INPUT", "Requisição de exportação inválida.", err.Error(), nil)
	case errors.Is(err, entity.ErrUnsupportedFormat):
		response.Error(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Formato não suportado.", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		ctxzap.Error(ctx, "export timed out", zap.Error(err))
		response.Error(w, http.StatusGatewayTimeout, "EXPORT_TIMEOUT", "Tempo limite ao gerar documento.", err.Error(), nil)
	default:
		ctxzap.Error(ctx, "export failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "EXPORT_ERR", "Erro ao gerar documento", err.Error(), nil)
	}
}
