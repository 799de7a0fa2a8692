package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

// ExecuteFanOut is the fire callback shared by one-shot timers, cron
// entries and manual execution. Failures are recorded in history, not
// returned; a trigger has no caller to report to.
func (s *Service) ExecuteFanOut(ctx context.Context, jobID int64) {
	if _, err := s.run(ctx, jobID); err != nil {
		s.log.Error("Fan-out failed", zap.Int64("jobID", jobID), zap.Error(err))
	}
}

// RunNow executes a fan-out immediately, out of band from any armed
// trigger, and returns the per-target results to the caller.
func (s *Service) RunNow(ctx context.Context, jobID int64) (*payloads.ExecutionResult, error) {
	return s.run(ctx, jobID)
}

// run performs one execution attempt: exactly one history row is
// written for it, inserted as started and updated in place to its
// terminal status, and lastExecution is stamped whatever the outcome.
func (s *Service) run(ctx context.Context, jobID int64) (*payloads.ExecutionResult, error) {
	executionID, _ := uuid.NewV4()
	log := s.log.With(
		zap.Int64("jobID", jobID),
		zap.String("executionID", executionID.String()),
	)

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("loading job %d: %w", jobID, err)
	}

	started := time.Now()
	historyID, err := s.store.AppendHistory(ctx, &payloads.ExecutionHistoryEntry{
		JobID:     jobID,
		Status:    payloads.ExecutionStarted,
		StartTime: started,
	})
	if err != nil {
		return nil, fmt.Errorf("recording execution start for job %d: %w", jobID, err)
	}

	log.Info("Executing job", zap.String("name", job.Name), zap.Int("targets", len(job.Targets)))

	server, err := s.store.GetBuildServer(ctx, job.BuildServerConfigID)
	if err != nil {
		// No target is contacted when the server configuration cannot
		// be resolved; the attempt fails as a whole.
		summary := fmt.Sprintf("failed to resolve build server configuration %d: %v",
			job.BuildServerConfigID, err)
		s.finish(ctx, log, jobID, historyID, payloads.ExecutionFailed, summary)
		return &payloads.ExecutionResult{
			Status:  payloads.ExecutionFailed,
			Targets: []payloads.TargetResult{},
		}, fmt.Errorf("%w: %v", core.ErrConfigResolution, err)
	}

	client := s.clients(server)

	results := make([]payloads.TargetResult, 0, len(job.Targets))
	for _, target := range job.Targets {
		tr := payloads.TargetResult{Target: target}

		location, err := client.TriggerBuild(ctx, target, job.ParametersFor(target))
		if err != nil {
			// One target failing never stops the remaining targets.
			tr.Error = err.Error()
			log.Warn("Target trigger failed", zap.String("target", target), zap.Error(err))
		} else {
			tr.Success = true
			tr.QueueLocation = location
			log.Info("Target triggered", zap.String("target", target), zap.String("queue", location))
		}

		results = append(results, tr)
	}

	result := Reconcile(results)
	s.finish(ctx, log, jobID, historyID, result.Status, Summarize(result))

	return result, nil
}

// finish writes the terminal history status and stamps the job's last
// execution time. Persistence errors here are logged; the attempt
// itself already happened.
func (s *Service) finish(ctx context.Context, log *logger.Logger, jobID, historyID int64, status payloads.ExecutionStatus, summary string) {
	if err := s.store.CompleteHistory(ctx, historyID, status, time.Now(), summary); err != nil {
		log.Error("Failed to record execution outcome", zap.Error(err))
	}
	if err := s.store.TouchLastExecution(ctx, jobID, time.Now()); err != nil {
		log.Error("Failed to stamp last execution", zap.Error(err))
	}
	log.Info("Execution finished", zap.String("status", string(status)))
}
