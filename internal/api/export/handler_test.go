package export

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
	format entity.ExportFormat
	result *entity.ExportResult
	err    error
	file   *entity.StoredFile
}

func (s *stubUsecase) Export(ctx context.Context, req *entity.ExportRequest, format entity.ExportFormat) (*entity.ExportResult, error) {
	s.format = format
	return s.result, s.err
}

func (s *stubUsecase) GetFile(ctx context.Context, name string) (*entity.StoredFile, error) {
	if s.file == nil || s.file.Name != name {
		return nil, fmt.Errorf("get file: %w", entity.ErrFileNotFound)
	}
	return s.file, nil
}

func newRouter(uc ExportUsecase, exportLimit int) http.Handler {
	h := NewHandler(uc)
	r := chi.NewRouter()
	RegisterRoutes(r, h, ratelimit.NewLimiter(), config.RateLimitConfig{Window: time.Minute, Export: exportLimit})
	RegisterFileRoutes(r, h)
	return r
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestExport_RoutesSelectFormat(t *testing.T) {
	tests := []struct {
		path   string
		format entity.ExportFormat
	}{
		{"/export/cobrancaDocx", entity.FormatDOCX},
		{"/export/cobrancaPdf", entity.FormatPDF},
		{"/export/cobranca/markdown", entity.FormatMarkdown},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			uc := &stubUsecase{result: &entity.ExportResult{OK: true, Filename: "acao_cobranca_1.x", Base64: "AA==", Meta: map[string]any{}}}
			rec := post(t, newRouter(uc, 10), tt.path, `{"doc":{"sections":{}}}`)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.format, uc.format)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, true, body["ok"])
			assert.Equal(t, "AA==", body["base64"])
		})
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid sections", fmt.Errorf("%w: doc.sections", entity.ErrInvalidSections), http.StatusBadRequest},
		{"missing", fmt.Errorf("%w: doc", entity.ErrMissingField), http.StatusBadRequest},
		{"bad delivery", fmt.Errorf("%w: delivery", entity.ErrInvalidParameter), http.StatusBadRequest},
		{"deadline", fmt.Errorf("render pdf: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"render failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newRouter(&stubUsecase{err: tt.err}, 10), "/export/cobrancaPdf", `{}`)
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
		})
	}
}

func TestExport_InvalidJSON(t *testing.T) {
	rec := post(t, newRouter(&stubUsecase{}, 10), "/export/cobrancaDocx", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_RateLimited(t *testing.T) {
	uc := &stubUsecase{result: &entity.ExportResult{OK: true, Meta: map[string]any{}}}
	router := newRouter(uc, 1)

	assert.Equal(t, http.StatusOK, post(t, router, "/export/cobrancaPdf", `{}`).Code)
	rec := post(t, router, "/export/cobranca/markdown", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestGetFile(t *testing.T) {
	uc := &stubUsecase{file: &entity.StoredFile{Name: "abc.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3")}}
	router := newRouter(uc, 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/files/abc.pdf", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="abc.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/files/missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
