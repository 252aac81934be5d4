package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/validalex/draft-backend/internal/entity"
)

var _ JobRepository = &JobSQLite{}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS draft_jobs (
    key TEXT PRIMARY KEY,
    job_id TEXT NOT NULL,
    status TEXT NOT NULL,
    record TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    expires_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_draft_jobs_expires_at ON draft_jobs (expires_at);`

// JobSQLite stores job records in a local SQLite file. Timestamps are unix
// milliseconds.
type JobSQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens (and creates when needed) the database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func NewJobSQLite(ctx context.Context, db *sql.DB, ttl time.Duration) (*JobSQLite, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &JobSQLite{db: db, ttl: ttl, now: time.Now}, nil
}

func (r *JobSQLite) Create(ctx context.Context, job *entity.Job) error {
	return r.write(ctx, `
INSERT INTO draft_jobs (key, job_id, status, record, created_at, updated_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`, job)
}

func (r *JobSQLite) Save(ctx context.Context, job *entity.Job) error {
	return r.write(ctx, `
INSERT INTO draft_jobs (key, job_id, status, record, created_at, updated_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    status = excluded.status,
    record = excluded.record,
    updated_at = excluded.updated_at`, job)
}

func (r *JobSQLite) write(ctx context.Context, query string, job *entity.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}

	var expiresAt sql.NullInt64
	if r.ttl > 0 {
		expiresAt = sql.NullInt64{Int64: job.CreatedAt.Add(r.ttl).UnixMilli(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		entity.JobKey(job.ID), job.ID, string(job.Status), string(data),
		job.CreatedAt.UnixMilli(), job.UpdatedAt.UnixMilli(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("write job %s: %w", job.ID, err)
	}
	return nil
}

func (r *JobSQLite) Get(ctx context.Context, jobID string) (*entity.Job, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT record FROM draft_jobs WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		entity.JobKey(jobID), r.now().UnixMilli(),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", entity.ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("query job %s: %w", jobID, err)
	}
	return decodeJob(jobID, []byte(data))
}

func (r *JobSQLite) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM draft_jobs WHERE expires_at IS NOT NULL AND expires_at <= ?`, r.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge expired jobs: %w", err)
	}
	return res.RowsAffected()
}
