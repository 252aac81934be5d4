package draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/logger"
	"github.com/validalex/draft-backend/internal/pkg/response"
	draftuc "github.com/validalex/draft-backend/internal/usecase/draft"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase DraftUsecase
}

func NewHandler(usecase DraftUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Cobranca handles POST /api/draft/cobranca - synchronous draft
func (h *Handler) Cobranca(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DraftCobranca")

	req, ok := h.decode(ctx, w, r)
	if !ok {
		return
	}
	ctxzap.Debug(ctx, "draft request received", logger.Redacted("payload", req))

	env, err := h.usecase.Generate(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, env)
}

// Validate handles POST /api/draft/cobrancaValidate - validation only
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DraftValidate")

	req, ok := h.decode(ctx, w, r)
	if !ok {
		return
	}

	response.Success(w, h.usecase.Validate(req))
}

// Start handles POST /api/draft/cobrancaStart - asynchronous draft
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DraftCobrancaStart")

	req, ok := h.decode(ctx, w, r)
	if !ok {
		return
	}

	resp, err := h.usecase.Start(ctx, req)
	if errors.Is(err, entity.ErrInvalidParameter) {
		ctxzap.Warn(ctx, "rejected draft job", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "INVALID_CALLBACK_URL", "callback_url deve ser uma URL http(s) absoluta.", err.Error(), nil)
		return
	}
	if err != nil {
		ctxzap.Error(ctx, "failed to start draft job", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "START_ERR", "Falha ao iniciar o rascunho.", err.Error(), nil)
		return
	}

	ctxzap.Info(ctx, "draft job accepted", zap.String("job_id", resp.JobID))
	response.Accepted(w, resp)
}

// Status handles GET /api/draft/cobrancaStatus?jobId=... - job polling
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(r.URL.Query().Get("jobId"))
	ctx := logger.WithJobID(logger.WithAction(r.Context(), "DraftCobrancaStatus"), jobID)

	if jobID == "" {
		response.Error(w, http.StatusBadRequest, "MISSING_JOB_ID", "jobId ausente", "", nil)
		return
	}

	job, err := h.usecase.Status(ctx, jobID)
	if err != nil {
		if errors.Is(err, entity.ErrJobNotFound) {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job não encontrado", "", nil)
			return
		}
		ctxzap.Error(ctx, "failed to read job", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "STATUS_ERR", "Falha ao consultar o job.", err.Error(), nil)
		return
	}

	ctxzap.Debug(ctx, "job status read", zap.String("status", string(job.Status)))
	response.Success(w, toStatusResponse(job))
}

func (h *Handler) decode(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.DraftRequest, bool) {
	var req entity.DraftRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido.", err.Error(), nil)
		return nil, false
	}
	return &req, true
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	f := draftuc.Classify(err)
	ctxzap.Error(ctx, "draft generation failed",
		zap.Int("status", f.Status),
		zap.String("code", f.Code),
		zap.Error(err),
	)
	response.Error(w, f.Status, f.Code, f.Message, err.Error(), map[string]any{"stage": "handler"})
}
