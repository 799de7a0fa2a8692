package library

import (
	"context"
	"time"

	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

//go:generate go run go.uber.org/mock/mockgen -source=$GOFILE -destination=mock/store.go -package=mock_library Store

// Store owns all durable state: job definitions, execution history,
// build server configurations and users. The scheduling registry is
// fully reconstructible from its contents.
type Store interface {
	CreateJob(ctx context.Context, job *payloads.ScheduledJob) (int64, error)
	GetJob(ctx context.Context, id int64) (*payloads.ScheduledJob, error)
	ListJobs(ctx context.Context) ([]*payloads.ScheduledJob, error)
	// ListActiveJobs returns the jobs the registry arms at startup.
	ListActiveJobs(ctx context.Context) ([]*payloads.ScheduledJob, error)
	UpdateJob(ctx context.Context, job *payloads.ScheduledJob) error
	// DeleteJob removes the job row only. History rows referencing
	// the job are deliberately left in place, readable by job id.
	DeleteJob(ctx context.Context, id int64) error
	UpdateJobStatus(ctx context.Context, id int64, status payloads.JobStatus) error
	// TouchLastExecution stamps the job after a fan-out attempt,
	// regardless of its outcome.
	TouchLastExecution(ctx context.Context, id int64, at time.Time) error

	AppendHistory(ctx context.Context, entry *payloads.ExecutionHistoryEntry) (int64, error)
	// CompleteHistory updates the attempt's single row in place with
	// its terminal status; it never writes a second row.
	CompleteHistory(ctx context.Context, id int64, status payloads.ExecutionStatus, endTime time.Time, logOutput string) error
	ListHistory(ctx context.Context, limit int) ([]*payloads.ExecutionHistoryEntry, error)
	ListHistoryByJob(ctx context.Context, jobID int64) ([]*payloads.ExecutionHistoryEntry, error)

	CreateBuildServer(ctx context.Context, server *payloads.BuildServer) (int64, error)
	GetBuildServer(ctx context.Context, id int64) (*payloads.BuildServer, error)
	ListBuildServers(ctx context.Context) ([]*payloads.BuildServer, error)
	// DeleteBuildServer fails with a validation error while any job
	// still references the configuration.
	DeleteBuildServer(ctx context.Context, id int64) error

	GetUser(ctx context.Context, id int64) (*payloads.User, error)
	GetUserByUsername(ctx context.Context, username string) (*payloads.User, error)

	Close() error
}
