package entity

import "errors"

// Domain errors
var (
	// Model errors
	ErrModelTimeout   = errors.New("model call timed out")
	ErrModelTransient = errors.New("model upstream temporarily unavailable")
	ErrModelUpstream  = errors.New("model upstream error")
	ErrModelEmpty     = errors.New("model returned no usable text")

	// Model output errors
	ErrModelOutputNotJSON    = errors.New("Resposta do modelo não é JSON válido")
	ErrModelOutputNoSections = errors.New("JSON inválido: falta 'sections' (objeto)")

	// Template errors
	ErrTemplateLoad           = errors.New("failed to load template")
	ErrInvalidTemplateVersion = errors.New("invalid template version")

	// Job errors
	ErrJobNotFound          = errors.New("job not found")
	ErrInvalidJobTransition = errors.New("invalid job transition")
	ErrJobPayloadMissing    = errors.New("job payload missing")

	// Export errors
	ErrInvalidSections   = errors.New("invalid doc.sections")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrFileNotFound      = errors.New("file not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Auth errors
	ErrTokenMissing      = errors.New("Token ausente")
	ErrTokenInvalid      = errors.New("Token inválido")
	ErrAuthNotConfigured = errors.New("VALIDALEX_SHARED_TOKEN não configurado")
)
