package payloads

import "time"

type ExecutionStatus string

const (
	ExecutionStarted        ExecutionStatus = "started"
	ExecutionSuccess        ExecutionStatus = "success"
	ExecutionPartialSuccess ExecutionStatus = "partial_success"
	ExecutionFailed         ExecutionStatus = "failed"
)

// Terminal reports whether the status is final for an attempt.
func (s ExecutionStatus) Terminal() bool {
	return s != ExecutionStarted
}

// ExecutionHistoryEntry records one fan-out attempt. Exactly one row
// exists per attempt: it is inserted as "started" when the fan-out
// begins and updated in place to its terminal status.
type ExecutionHistoryEntry struct {
	ID        int64           `json:"id"`
	JobID     int64           `json:"jobId"`
	Status    ExecutionStatus `json:"status"`
	StartTime time.Time       `json:"startTime"`
	EndTime   *time.Time      `json:"endTime,omitempty"`
	LogOutput string          `json:"logOutput,omitempty"`
}
