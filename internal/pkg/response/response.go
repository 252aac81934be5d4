package response

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/validalex/draft-backend/internal/entity"
)

const maxDetailsLen = 300

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error writes a degraded envelope carrying a user-safe message, a stable
// code and a bounded detail string.
func Error(w http.ResponseWriter, status int, code, message, details string, meta map[string]any) {
	JSON(w, status, NewErrorEnvelope(status, code, message, details, meta))
}

// NewErrorEnvelope builds the error body shared by every route. The
// envelope alerts carry the message under the DRAFT_COBRANCA_ERR code.
func NewErrorEnvelope(status int, code, message, details string, meta map[string]any) *entity.ErrorEnvelope {
	alerts := []entity.Alert{{Level: entity.AlertLevelError, Code: entity.AlertDraftFailed, Message: message}}
	return &entity.ErrorEnvelope{
		Envelope: *entity.NewDegradedEnvelope(alerts, nil, meta),
		Status:   status,
		Code:     code,
		Error:    message,
		Details:  TruncateDetails(details),
	}
}

// TruncateDetails bounds upstream error text before it reaches a client.
func TruncateDetails(s string) string {
	if utf8.RuneCountInString(s) <= maxDetailsLen {
		return s
	}
	return string([]rune(s)[:maxDetailsLen]) + "…"
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Accepted writes a 202 Accepted response
func Accepted(w http.ResponseWriter, data any) {
	JSON(w, http.StatusAccepted, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
