package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/entity"
)

func TestError_WritesDegradedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusBadGateway, "MODEL_UPSTREAM", "Falha no serviço de geração.", strings.Repeat("x", 400), map[string]any{"stage": "model"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "", body["html"])
	assert.EqualValues(t, 502, body["status"])
	assert.Equal(t, "MODEL_UPSTREAM", body["code"])
	assert.Equal(t, "Falha no serviço de geração.", body["error"])
	assert.Len(t, []rune(body["details"].(string)), maxDetailsLen+1)
	assert.Equal(t, "model", body["meta"].(map[string]any)["stage"])
	assert.Len(t, body["sections"], len(entity.SectionKeys))
	assert.Empty(t, body["missing"])

	alerts := body["alerts"].([]any)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertDraftFailed, alerts[0].(map[string]any)["code"])
}

func TestTruncateDetails(t *testing.T) {
	assert.Equal(t, "curto", TruncateDetails("curto"))
	assert.Equal(t, strings.Repeat("é", maxDetailsLen)+"…", TruncateDetails(strings.Repeat("é", 500)))
}
