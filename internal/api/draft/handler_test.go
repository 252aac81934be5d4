package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
)

type stubUsecase struct {
	env         *entity.Envelope
	err         error
	job         *entity.Job
	jobErr      error
	startErr    error
	generateReq *entity.DraftRequest
}

func (s *stubUsecase) Validate(req *entity.DraftRequest) entity.ValidationResult {
	return entity.ValidationResult{OK: true, Missing: []entity.MissingField{}, Alerts: []entity.Alert{}}
}

func (s *stubUsecase) Generate(ctx context.Context, req *entity.DraftRequest) (*entity.Envelope, error) {
	s.generateReq = req
	return s.env, s.err
}

func (s *stubUsecase) Start(ctx context.Context, req *entity.DraftRequest) (*entity.StartDraftResponse, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return &entity.StartDraftResponse{OK: true, JobID: "job-1", StatusURL: entity.JobStatusURL("job-1")}, nil
}

func (s *stubUsecase) Status(ctx context.Context, jobID string) (*entity.Job, error) {
	return s.job, s.jobErr
}

func newRouter(uc DraftUsecase) http.Handler {
	r := chi.NewRouter()
	limits := config.RateLimitConfig{Window: time.Minute, Draft: 100, Start: 100, Status: 100}
	RegisterRoutes(r, NewHandler(uc), ratelimit.NewLimiter(), limits)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestCobranca_Success(t *testing.T) {
	uc := &stubUsecase{env: &entity.Envelope{
		OK:       true,
		HTML:     "<div></div>",
		Sections: entity.Sections{Fatos: "x"},
		Alerts:   []entity.Alert{},
		Missing:  []entity.MissingField{},
		Meta:     map[string]any{},
	}}

	rec, body := doRequest(t, newRouter(uc), http.MethodPost, "/draft/cobranca",
		map[string]any{"data": map[string]any{"divida": map[string]any{"valor": "1500"}}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	sections := body["sections"].(map[string]any)
	assert.Len(t, sections, 7)
	require.NotNil(t, uc.generateReq)
	assert.InDelta(t, 1500.0, uc.generateReq.Data.Divida.Valor.Value, 0.001)
}

func TestCobranca_ValidationFailureIs200(t *testing.T) {
	uc := &stubUsecase{env: entity.NewDegradedEnvelope(nil,
		[]entity.MissingField{{Path: "partes.reu.cpf_cnpj", Label: "Réu - CPF/CNPJ"}},
		map[string]any{"stage": "validate"})}

	rec, body := doRequest(t, newRouter(uc), http.MethodPost, "/draft/cobranca", map[string]any{"data": map[string]any{}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["ok"])
	assert.Len(t, body["missing"], 1)
}

func TestCobranca_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"timeout", fmt.Errorf("generate draft: %w", entity.ErrModelTimeout), http.StatusGatewayTimeout, "MODEL_TIMEOUT"},
		{"upstream", fmt.Errorf("generate draft: %w", entity.ErrModelUpstream), http.StatusBadGateway, "MODEL_UPSTREAM"},
		{"bad output", entity.ErrModelOutputNoSections, http.StatusInternalServerError, "MODEL_OUTPUT_INVALID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, newRouter(&stubUsecase{err: tt.err}), http.MethodPost, "/draft/cobranca", map[string]any{})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, float64(tt.status), body["status"])
			assert.Len(t, body["sections"], 7)
			assert.Equal(t, "handler", body["meta"].(map[string]any)["stage"])
		})
	}
}

func TestCobranca_InvalidJSON(t *testing.T) {
	rec, body := doRequest(t, newRouter(&stubUsecase{}), http.MethodPost, "/draft/cobranca", "{nope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", body["code"])
}

func TestStart(t *testing.T) {
	rec, body := doRequest(t, newRouter(&stubUsecase{}), http.MethodPost, "/draft/cobrancaStart", map[string]any{})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "job-1", body["jobId"])
	assert.Equal(t, "/api/draft/cobrancaStatus?jobId=job-1", body["statusUrl"])
}

func TestStart_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad callback", fmt.Errorf("%w: callback_url", entity.ErrInvalidParameter), http.StatusBadRequest, "INVALID_CALLBACK_URL"},
		{"store down", fmt.Errorf("create job: %w", errors.New("db down")), http.StatusInternalServerError, "START_ERR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, newRouter(&stubUsecase{startErr: tt.err}), http.MethodPost, "/draft/cobrancaStart",
				map[string]any{"callback_url": "ftp://example.test/hook"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, false, body["ok"])
		})
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing job id", func(t *testing.T) {
		rec, body := doRequest(t, newRouter(&stubUsecase{}), http.MethodGet, "/draft/cobrancaStatus", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "jobId ausente", body["error"])
	})

	t.Run("not found", func(t *testing.T) {
		uc := &stubUsecase{jobErr: fmt.Errorf("get job: %w", entity.ErrJobNotFound)}
		rec, _ := doRequest(t, newRouter(uc), http.MethodGet, "/draft/cobrancaStatus?jobId=x", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("running", func(t *testing.T) {
		job := entity.NewQueuedJob("job-1", nil, now)
		require.NoError(t, job.Transition(entity.JobStatusRunning, now.Add(time.Second)))

		rec, body := doRequest(t, newRouter(&stubUsecase{job: job}), http.MethodGet, "/draft/cobrancaStatus?jobId=job-1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "running", body["status"])
		meta := body["meta"].(map[string]any)
		assert.Equal(t, "2026-03-01T12:00:00Z", meta["createdAt"])
		assert.Equal(t, "2026-03-01T12:00:01Z", meta["updatedAt"])
		assert.NotContains(t, body, "sections")
	})

	t.Run("done", func(t *testing.T) {
		job := entity.NewQueuedJob("job-1", nil, now)
		require.NoError(t, job.Transition(entity.JobStatusDone, now))
		job.Result = &entity.Envelope{OK: true, Sections: entity.Sections{Fatos: "f"}, Meta: map[string]any{"ms": 10}}

		rec, body := doRequest(t, newRouter(&stubUsecase{job: job}), http.MethodGet, "/draft/cobrancaStatus?jobId=job-1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "done", body["status"])
		assert.Equal(t, "f", body["sections"].(map[string]any)["fatos"])
		assert.Empty(t, body["alerts"])
	})

	t.Run("error", func(t *testing.T) {
		job := entity.NewQueuedJob("job-1", nil, now)
		require.NoError(t, job.Transition(entity.JobStatusRunning, now))
		require.NoError(t, job.Transition(entity.JobStatusError, now))
		job.Error = &entity.JobError{Message: "Tempo limite", Status: 504}

		rec, body := doRequest(t, newRouter(&stubUsecase{job: job}), http.MethodGet, "/draft/cobrancaStatus?jobId=job-1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "Tempo limite", body["error"])
		assert.Equal(t, float64(504), body["statusCode"])
	})
}
