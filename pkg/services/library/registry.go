package library

import (
	"context"

	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

//go:generate go run go.uber.org/mock/mockgen -source=$GOFILE -destination=mock/registry.go -package=mock_library Registry

// Registry owns the in-memory trigger handles: one-shot timers and
// recurring cron entries, keyed by job id. Handles are transient; the
// store remains the source of truth for schedule intent.
type Registry interface {
	// Arm installs a trigger for the job, replacing any existing
	// handle for the same id. Inactive jobs are left unarmed; a
	// one-shot job whose execution time has passed is transitioned
	// to expired instead of being armed.
	Arm(ctx context.Context, job *payloads.ScheduledJob) error
	// Disarm cancels the job's handle. Calling it without a handle
	// installed is a no-op. An in-flight fan-out is allowed to
	// complete.
	Disarm(jobID int64)
	// ArmAll loads every active job from the store and arms it.
	ArmAll(ctx context.Context) error
	// RunNow executes a fan-out immediately, out of band from any
	// trigger, and returns the per-target results.
	RunNow(ctx context.Context, jobID int64) (*payloads.ExecutionResult, error)
	// Armed reports whether a handle exists for the job id.
	Armed(jobID int64) bool
	// Stop cancels every handle and stops the cron runner.
	Stop()
}
