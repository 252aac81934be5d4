package builder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/repository"
)

// jobStore is the job repository chosen by STORE_DRIVER plus whatever has
// to be closed on shutdown.
type jobStore struct {
	repo   repository.JobRepository
	purger purger
	pool   *pgxpool.Pool
	sqlite *sql.DB
}

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func (s *jobStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sqlite != nil {
		_ = s.sqlite.Close()
	}
}

func setupJobStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*jobStore, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}
		repo := repository.NewJobPostgres(pool, cfg.JobTTL)
		return &jobStore{repo: repo, purger: repo, pool: pool}, nil

	case config.StoreSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewJobSQLite(ctx, db, cfg.JobTTL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("sqlite job store opened", zap.String("path", cfg.SQLitePath))
		return &jobStore{repo: repo, purger: repo, sqlite: db}, nil

	default:
		logger.Info("in-memory job store", zap.Duration("ttl", cfg.JobTTL))
		return &jobStore{repo: repository.NewJobMemory(cfg.JobTTL)}, nil
	}
}

// setupDatabase creates a new database connection pool
func setupDatabase(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}
