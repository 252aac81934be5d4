package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	draftapi "github.com/validalex/draft-backend/internal/api/draft"
	exportapi "github.com/validalex/draft-backend/internal/api/export"
	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
)

type nopDraft struct{}

func (nopDraft) Validate(*entity.DraftRequest) entity.ValidationResult {
	return entity.ValidationResult{OK: true}
}

func (nopDraft) Generate(context.Context, *entity.DraftRequest) (*entity.Envelope, error) {
	return entity.NewDegradedEnvelope(nil, nil, nil), nil
}

func (nopDraft) Start(context.Context, *entity.DraftRequest) (*entity.StartDraftResponse, error) {
	return &entity.StartDraftResponse{OK: true, JobID: "j"}, nil
}

func (nopDraft) Status(context.Context, string) (*entity.Job, error) {
	return nil, entity.ErrJobNotFound
}

type nopExport struct{}

func (nopExport) Export(context.Context, *entity.ExportRequest, entity.ExportFormat) (*entity.ExportResult, error) {
	return &entity.ExportResult{OK: true}, nil
}

func (nopExport) GetFile(context.Context, string) (*entity.StoredFile, error) {
	return nil, entity.ErrFileNotFound
}

func newTestRouter() http.Handler {
	cfg := &config.Config{
		RequestTimeout: 5 * time.Second,
		AuthCfg:        config.AuthConfig{SharedToken: "segredo"},
		RateLimitCfg:   config.RateLimitConfig{Window: time.Minute, Draft: 5, Start: 5, Status: 5, Export: 5},
	}
	return SetupRouter(
		draftapi.NewHandler(nopDraft{}),
		exportapi.NewHandler(nopExport{}),
		ratelimit.NewLimiter(),
		cfg,
		zap.NewNop(),
	)
}

func TestSetupRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestSetupRouter_AuthGuardsAPI(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/draft/cobranca", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/draft/cobranca", bytes.NewBufferString(`{}`))
	req.Header.Set("X-Validalex-Token", "segredo")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRouter_FileRouteIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/files/x.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "FILE_NOT_FOUND")
}

func TestSetupRouter_Docs(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs/index.html", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/swagger.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/draft/cobrancaStart")
}

func TestSetupRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/draft/cobranca", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_UnauthenticatedCallsCountAgainstLimit(t *testing.T) {
	router := newTestRouter()

	for range 5 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/draft/cobranca", bytes.NewBufferString(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/draft/cobranca", bytes.NewBufferString(`{}`))
	req.Header.Set("X-Validalex-Token", "segredo")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export/cobrancaPdf", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "export quota is separate")
}
