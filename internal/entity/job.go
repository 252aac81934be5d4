package entity

import (
	"fmt"
	"time"
)

type JobStatus string

// Job lifecycle: queued -> running -> done|error, or queued -> done when
// validation fails up front. done and error are terminal.
const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusQueued:  {JobStatusRunning, JobStatusDone},
	JobStatusRunning: {JobStatusDone, JobStatusError},
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// CanTransition reports whether moving from s to next is allowed.
func (s JobStatus) CanTransition(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Job is an asynchronously tracked draft generation.
type Job struct {
	ID          string        `json:"id"`
	Status      JobStatus     `json:"status"`
	Payload     *DraftRequest `json:"payload,omitempty"`
	Result      *Envelope     `json:"result,omitempty"`
	Error       *JobError     `json:"error,omitempty"`
	CallbackURL string        `json:"callbackUrl,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type JobError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// NewQueuedJob creates a job in its initial state.
func NewQueuedJob(id string, payload *DraftRequest, now time.Time) *Job {
	j := &Job{
		ID:        id,
		Status:    JobStatusQueued,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if payload != nil {
		j.CallbackURL = payload.CallbackURL
	}
	return j
}

// Transition moves the job to next and bumps UpdatedAt.
func (j *Job) Transition(next JobStatus, now time.Time) error {
	if !j.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidJobTransition, j.Status, next)
	}
	j.Status = next
	j.UpdatedAt = now
	return nil
}

// JobKey is the storage key of a job record.
func JobKey(jobID string) string {
	return "jobs/cobranca/" + jobID + ".json"
}

// JobStatusURL is the polling URL handed back to clients.
func JobStatusURL(jobID string) string {
	return "/api/draft/cobrancaStatus?jobId=" + jobID
}

type StartDraftResponse struct {
	OK        bool   `json:"ok"`
	JobID     string `json:"jobId"`
	StatusURL string `json:"statusUrl"`
}

// JobProgressDTO is returned while a job is queued or running.
type JobProgressDTO struct {
	OK     bool            `json:"ok"`
	JobID  string          `json:"jobId"`
	Status JobStatus       `json:"status"`
	Meta   JobProgressMeta `json:"meta"`
}

type JobProgressMeta struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobResultDTO is returned once a job is terminal: the envelope fields are
// flattened next to the job identifiers.
type JobResultDTO struct {
	OK         bool           `json:"ok"`
	JobID      string         `json:"jobId"`
	Status     JobStatus      `json:"status"`
	Error      string         `json:"error,omitempty"`
	StatusCode int            `json:"statusCode,omitempty"`
	HTML       string         `json:"html"`
	Sections   Sections       `json:"sections"`
	Alerts     []Alert        `json:"alerts"`
	Missing    []MissingField `json:"missing"`
	Meta       map[string]any `json:"meta"`
}

// ResultDTO flattens a terminal job for the status route and callbacks.
func (j *Job) ResultDTO() *JobResultDTO {
	dto := &JobResultDTO{
		OK:       false,
		JobID:    j.ID,
		Status:   j.Status,
		Sections: Sections{},
		Alerts:   []Alert{},
		Missing:  []MissingField{},
		Meta:     map[string]any{},
	}
	if j.Result != nil {
		dto.OK = j.Result.OK
		dto.HTML = j.Result.HTML
		dto.Sections = j.Result.Sections
		if j.Result.Alerts != nil {
			dto.Alerts = j.Result.Alerts
		}
		if j.Result.Missing != nil {
			dto.Missing = j.Result.Missing
		}
		if j.Result.Meta != nil {
			dto.Meta = j.Result.Meta
		}
	}
	if j.Error != nil {
		dto.OK = false
		dto.Error = j.Error.Message
		dto.StatusCode = j.Error.Status
	}
	return dto
}

// ProgressDTO describes a job that is still queued or running.
func (j *Job) ProgressDTO() *JobProgressDTO {
	return &JobProgressDTO{
		OK:     true,
		JobID:  j.ID,
		Status: j.Status,
		Meta:   JobProgressMeta{CreatedAt: j.CreatedAt, UpdatedAt: j.UpdatedAt},
	}
}
