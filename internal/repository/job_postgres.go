package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/validalex/draft-backend/internal/entity"
)

var _ JobRepository = &JobPostgres{}

// JobPostgres stores job records as JSONB rows keyed by entity.JobKey.
type JobPostgres struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

func NewJobPostgres(db *pgxpool.Pool, ttl time.Duration) *JobPostgres {
	return &JobPostgres{db: db, ttl: ttl}
}

const (
	insertJobQuery = `
INSERT INTO draft_jobs (key, job_id, status, record, created_at, updated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	upsertJobQuery = `
INSERT INTO draft_jobs (key, job_id, status, record, created_at, updated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (key) DO UPDATE
SET status = EXCLUDED.status,
    record = EXCLUDED.record,
    updated_at = EXCLUDED.updated_at`

	selectJobQuery = `
SELECT record FROM draft_jobs
WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`

	purgeJobsQuery = `DELETE FROM draft_jobs WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

func (r *JobPostgres) Create(ctx context.Context, job *entity.Job) error {
	return r.write(ctx, insertJobQuery, job)
}

func (r *JobPostgres) Save(ctx context.Context, job *entity.Job) error {
	return r.write(ctx, upsertJobQuery, job)
}

func (r *JobPostgres) write(ctx context.Context, query string, job *entity.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if r.ttl > 0 {
		t := job.CreatedAt.Add(r.ttl)
		expiresAt = &t
	}

	_, err = r.db.Exec(ctx, query,
		entity.JobKey(job.ID), job.ID, string(job.Status), data,
		job.CreatedAt, job.UpdatedAt, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("write job %s: %w", job.ID, err)
	}
	return nil
}

func (r *JobPostgres) Get(ctx context.Context, jobID string) (*entity.Job, error) {
	var data []byte
	err := r.db.QueryRow(ctx, selectJobQuery, entity.JobKey(jobID)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", entity.ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("query job %s: %w", jobID, err)
	}
	return decodeJob(jobID, data)
}

// PurgeExpired deletes expired job rows and returns how many were removed.
func (r *JobPostgres) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, purgeJobsQuery)
	if err != nil {
		return 0, fmt.Errorf("purge expired jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
