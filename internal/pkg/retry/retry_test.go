package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func fastConfig() *RetryConfig {
	return &RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond, Timeout: time.Second}
}

func isTransient(err error) bool {
	return errors.Is(err, errTransient)
}

func TestDo_RetriesTransientOnce(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), isTransient, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestDo_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), isTransient, func(ctx context.Context) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func TestDo_DoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), isTransient, func(ctx context.Context) (int, error) {
		calls++
		return 0, errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDo_AttemptTimeout(t *testing.T) {
	cfg := fastConfig()
	cfg.Timeout = 10 * time.Millisecond

	calls := 0
	_, err := Do(context.Background(), cfg, isTransient, func(ctx context.Context) (int, error) {
		calls++
		<-ctx.Done()
		return 0, ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}
