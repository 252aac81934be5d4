package entity

type CallbackEventType string

const (
	CallbackEventTypeJobDone  CallbackEventType = "jobDone"
	CallbackEventTypeJobError CallbackEventType = "jobError"
)

// CallbackEvent is POSTed to a job's callback URL once it is terminal.
type CallbackEvent struct {
	Event     CallbackEventType `json:"event"`
	Timestamp string            `json:"timestamp"` // ISO-8601 UTC
	JobID     string            `json:"jobId"`
	Data      *JobResultDTO     `json:"data"`
}

// CallbackEventFor picks the event type matching a terminal job status.
func CallbackEventFor(status JobStatus) CallbackEventType {
	if status == JobStatusError {
		return CallbackEventTypeJobError
	}
	return CallbackEventTypeJobDone
}
