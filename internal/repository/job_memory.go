package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/validalex/draft-backend/internal/entity"
)

var _ JobRepository = &JobMemory{}

// JobMemory keeps serialized job records in process memory. Records expire
// after ttl; it is meant for single-instance deployments and tests.
type JobMemory struct {
	store *cache.Cache
}

func NewJobMemory(ttl time.Duration) *JobMemory {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &JobMemory{store: cache.New(ttl, 10*time.Minute)}
}

func (r *JobMemory) Create(ctx context.Context, job *entity.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	if err := r.store.Add(entity.JobKey(job.ID), data, cache.DefaultExpiration); err != nil {
		return fmt.Errorf("create job %s: %w", job.ID, err)
	}
	return nil
}

func (r *JobMemory) Save(ctx context.Context, job *entity.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	r.store.Set(entity.JobKey(job.ID), data, cache.DefaultExpiration)
	return nil
}

func (r *JobMemory) Get(ctx context.Context, jobID string) (*entity.Job, error) {
	v, ok := r.store.Get(entity.JobKey(jobID))
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrJobNotFound, jobID)
	}
	return decodeJob(jobID, v.([]byte))
}
