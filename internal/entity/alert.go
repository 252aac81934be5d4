package entity

import "strings"

type AlertLevel string

const (
	AlertLevelInfo  AlertLevel = "info"
	AlertLevelWarn  AlertLevel = "warn"
	AlertLevelError AlertLevel = "error"
)

// ParseAlertLevel maps free-form levels onto the closed set. "warning" is
// accepted as an alias of warn; anything else unknown becomes info.
func ParseAlertLevel(s string) AlertLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return AlertLevelError
	case "warn", "warning":
		return AlertLevelWarn
	default:
		return AlertLevelInfo
	}
}

// Alert codes emitted by the validator, parser and handlers.
const (
	AlertOrigemInconsistente     = "ORIGEM_INCONSISTENTE"
	AlertOrigemCategoriaInvalida = "ORIGEM_CATEGORIA_INVALIDA"
	AlertOrigemSubtipoInvalido   = "ORIGEM_SUBTIPO_INVALIDO"
	AlertReuEnderecoFraco        = "REU_ENDERECO_FRACO"
	AlertExtrajNaoDescrita       = "EXTRAJ_NAO_DESCRITA"
	AlertSemDocumentos           = "SEM_DOCUMENTOS"
	AlertValorInvalido           = "VALOR_INVALIDO"
	AlertDataFormato             = "DATA_FORMATO"
	AlertValorCausaMenor         = "VALOR_CAUSA_MENOR_QUE_DIVIDA"
	AlertParagraphTooShort       = "PARAGRAPH_TOO_SHORT"
	AlertParagraphTooLong        = "PARAGRAPH_TOO_LONG"
	AlertEmptySection            = "EMPTY_SECTION"
	AlertModelDefault            = "MODEL_ALERT"
	AlertDraftFailed             = "DRAFT_COBRANCA_ERR"
)

// Alert is a non-blocking diagnostic. Alerts never change ok/missing.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
}

// MissingField points at a critical input field that was left empty.
type MissingField struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// ValidationResult is the outcome of validating a PetitionInput.
// OK is true iff Missing is empty.
type ValidationResult struct {
	OK      bool           `json:"ok"`
	Missing []MissingField `json:"missing"`
	Alerts  []Alert        `json:"alerts"`
	Meta    map[string]any `json:"meta"`
}
