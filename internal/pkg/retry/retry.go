package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 2
	defaultDelay    = 500 * time.Millisecond
	defaultMaxDelay = 500 * time.Millisecond
	defaultTimeout  = 30 * time.Second
)

// RetryConfig describes a fixed-backoff retry policy. Attempts counts the
// first call, so 2 means "retry once". Timeout bounds every attempt.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"2"`
	Delay    time.Duration `env:"DELAY" envDefault:"500ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"500ms"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

func (rc *RetryConfig) ToRetryOptions(ctx context.Context, retryIf func(error) bool) []retry.Option {
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
	if retryIf != nil {
		opts = append(opts, retry.RetryIf(retryIf))
	}
	return opts
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
		Timeout:  defaultTimeout,
	}
}

// Do runs fn under the policy. Each attempt gets its own context bounded by
// rc.Timeout; only errors accepted by retryIf are retried.
func Do[T any](
	ctx context.Context,
	rc *RetryConfig,
	retryIf func(error) bool,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	if rc == nil {
		rc = DefaultRetryConfig()
	}
	if rc.Attempts == 0 {
		rc = &RetryConfig{Attempts: 1, Delay: rc.Delay, MaxDelay: rc.MaxDelay, Timeout: rc.Timeout}
	}

	return retry.DoWithData(func() (T, error) {
		attemptCtx := ctx
		if rc.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, rc.Timeout)
			defer cancel()
		}
		return fn(attemptCtx)
	}, rc.ToRetryOptions(ctx, retryIf)...)
}
