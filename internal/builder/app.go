package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const purgeInterval = 10 * time.Minute

// backgroundJobs is implemented by usecases that run work outside requests.
type backgroundJobs interface {
	Wait()
}

// App represents the application with all its components
type App struct {
	server          *http.Server
	store           *jobStore
	jobs            backgroundJobs
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// Run starts the application and blocks until a shutdown signal or a
// server error.
func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	if a.store.purger != nil {
		go a.purgeLoop(purgeCtx)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.store.Close()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	stopPurge()
	return a.shutdown()
}

// shutdown stops accepting requests, lets running jobs finish and closes
// the job store.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		a.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
		a.logger.Info("Background jobs finished")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout reached with jobs still running")
	}

	a.logger.Info("Closing job store")
	a.store.Close()

	a.logger.Info("Application stopped gracefully")
	return nil
}

func (a *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.store.purger.PurgeExpired(ctx)
			if err != nil {
				a.logger.Warn("failed to purge expired jobs", zap.Error(err))
				continue
			}
			if n > 0 {
				a.logger.Info("purged expired jobs", zap.Int64("count", n))
			}
		}
	}
}
