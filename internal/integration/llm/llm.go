package llm

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/validalex/draft-backend/internal/entity"
	pkghttp "github.com/validalex/draft-backend/pkg/http"
)

const (
	DefaultModel          = "gpt-4.1"
	DefaultTemperature    = 0.2
	DefaultMaxOutputChars = 25000
)

// isRetryable accepts only transient upstream failures. Timeouts are never
// retried.
func isRetryable(err error) bool {
	return errors.Is(err, entity.ErrModelTransient)
}

// classifyStatus maps an upstream HTTP status to a model error.
func classifyStatus(status int, err error) error {
	if pkghttp.IsTransientStatus(status) {
		return fmt.Errorf("%w: %v", entity.ErrModelTransient, err)
	}
	return fmt.Errorf("%w: %v", entity.ErrModelUpstream, err)
}

// classifyTransport maps a failure that produced no HTTP status.
func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || pkghttp.IsTimeout(err) {
		return fmt.Errorf("%w: %v", entity.ErrModelTimeout, err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", entity.ErrModelUpstream, err)
	}
	return fmt.Errorf("%w: %v", entity.ErrModelTransient, err)
}

// truncateOutput cuts text to maxChars runes and marks the cut.
func truncateOutput(text string, maxChars int) (string, bool) {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}
	return string([]rune(text)[:maxChars]) + "…", true
}
