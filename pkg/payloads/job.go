package payloads

import "time"

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	// JobStatusExpired is terminal. A one-shot job whose execution
	// time has passed without being armed ends up here.
	JobStatusExpired JobStatus = "expired"
)

type ScheduleKind string

const (
	ScheduleOnce      ScheduleKind = "once"
	ScheduleRecurring ScheduleKind = "recurring"
)

// Parameters maps a build parameter name to its value. Values are
// strings or booleans; a nil value means "use the target's default".
type Parameters map[string]any

// ScheduledJob is the canonical job shape. Legacy single-target rows
// are normalized into this form at the store boundary, so consumers
// never branch on old vs. new storage shapes.
type ScheduledJob struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	BuildServerConfigID int64  `json:"buildServerConfigId"`

	// Targets lists the folder-qualified build jobs this entry fans
	// out to, in trigger order. At least one is required.
	Targets []string `json:"targets"`
	// TargetParameters holds the per-target parameter mappings,
	// keyed by target.
	TargetParameters map[string]Parameters `json:"job_configs"`
	// DefaultParameters is the job-level fallback used for targets
	// without an entry in TargetParameters. Kept for jobs created
	// before per-target parameters existed.
	DefaultParameters Parameters `json:"parameters,omitempty"`

	Kind           ScheduleKind `json:"scheduleKind"`
	CronExpression string       `json:"cronExpression,omitempty"`
	ExecuteAt      *time.Time   `json:"executeAt,omitempty"`

	Status          JobStatus  `json:"status"`
	LastExecutionAt *time.Time `json:"lastExecutionAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ParametersFor resolves the parameter mapping for one target,
// falling back to the job-level defaults when the target has no
// entry of its own.
func (j *ScheduledJob) ParametersFor(target string) Parameters {
	if p, ok := j.TargetParameters[target]; ok {
		return p
	}
	return j.DefaultParameters
}
