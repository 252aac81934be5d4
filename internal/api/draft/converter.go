package draft

import "github.com/validalex/draft-backend/internal/entity"

// toStatusResponse picks the polling shape for the job's current state.
func toStatusResponse(job *entity.Job) any {
	if job.Status.IsTerminal() {
		return job.ResultDTO()
	}
	return job.ProgressDTO()
}
