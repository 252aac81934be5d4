package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/validalex/draft-backend/internal/entity"
)

// JobRepository persists one JSON record per job, addressed by
// entity.JobKey. Save overwrites the whole record.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	Save(ctx context.Context, job *entity.Job) error
	Get(ctx context.Context, jobID string) (*entity.Job, error)
}

func encodeJob(job *entity.Job) ([]byte, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	return data, nil
}

func decodeJob(jobID string, data []byte) (*entity.Job, error) {
	var job entity.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", jobID, err)
	}
	return &job, nil
}
