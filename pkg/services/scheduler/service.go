// Package scheduler owns the in-memory trigger registry: one-shot
// timers and cron entries keyed by job id, the fan-out routine that
// triggers every target of a fired job, and the reconciliation of
// per-target outcomes into one job status.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
)

// cronParser accepts standard five-field expressions plus an optional
// leading seconds field for sub-minute cadences, and descriptors like
// @hourly. The same parser validates expressions at the API boundary
// and drives the runner, so nothing accepted eagerly fails at fire
// time.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// handle is the live trigger backing one armed job. Exactly one
// handle exists per job id; installing a new one cancels the old.
type handle struct {
	timer     *time.Timer
	entry     cron.EntryID
	recurring bool
}

type Service struct {
	mu      sync.Mutex
	handles map[int64]*handle

	cron    *cron.Cron
	store   library.Store
	clients library.BuildClientFactory
	log     *logger.Logger
}

func New(store library.Store, clients library.BuildClientFactory, log *logger.Logger) *Service {
	runner := cron.New(cron.WithParser(cronParser))
	runner.Start()

	return &Service{
		handles: make(map[int64]*handle),
		cron:    runner,
		store:   store,
		clients: clients,
		log:     log,
	}
}

var _ library.Registry = (*Service)(nil)

// ValidateJob checks a job definition at the API boundary. Cron
// expressions are validated here, eagerly, with the parser the runner
// uses.
func ValidateJob(job *payloads.ScheduledJob) error {
	if strings.TrimSpace(job.Name) == "" {
		return core.Validationf("name is required")
	}
	if job.BuildServerConfigID == 0 {
		return core.Validationf("buildServerConfigId is required")
	}
	if len(job.Targets) == 0 {
		return core.Validationf("at least one target is required")
	}

	switch job.Kind {
	case payloads.ScheduleOnce:
		if job.ExecuteAt == nil {
			return core.Validationf("executeAt is required for one-shot jobs")
		}
	case payloads.ScheduleRecurring:
		if strings.TrimSpace(job.CronExpression) == "" {
			return core.Validationf("cronExpression is required for recurring jobs")
		}
		if _, err := cronParser.Parse(job.CronExpression); err != nil {
			return core.Validationf("invalid cron expression %q: %v", job.CronExpression, err)
		}
	default:
		return core.Validationf("unknown schedule kind %q", job.Kind)
	}

	return nil
}

// Arm installs a trigger for the job, replacing any existing handle
// for the same id. Arming is idempotent; only the most recently
// installed handle can ever fire.
func (s *Service) Arm(ctx context.Context, job *payloads.ScheduledJob) error {
	s.Disarm(job.ID)

	if job.Status != payloads.JobStatusActive {
		return nil
	}

	switch job.Kind {
	case payloads.ScheduleOnce:
		if job.ExecuteAt == nil {
			return core.Validationf("job %d has no execution time", job.ID)
		}

		delay := time.Until(*job.ExecuteAt)
		if delay <= 0 {
			// Never re-arm a one-shot job whose time has passed.
			if err := s.store.UpdateJobStatus(ctx, job.ID, payloads.JobStatusExpired); err != nil {
				return err
			}
			s.log.Info("One-shot job past its execution time, marked expired",
				zap.Int64("jobID", job.ID), zap.Time("executeAt", *job.ExecuteAt))
			return nil
		}

		jobID := job.ID
		h := &handle{}

		// Timer creation and handle installation happen under one
		// lock: removeHandle in the callback takes the same lock, so
		// even a near-immediate fire cannot remove the handle before
		// it is installed.
		s.mu.Lock()
		if old, ok := s.handles[jobID]; ok {
			s.cancelLocked(old)
		}
		h.timer = time.AfterFunc(delay, func() {
			s.ExecuteFanOut(context.Background(), jobID)
			// One-shot triggers never re-arm themselves.
			s.removeHandle(jobID, h)
		})
		s.handles[jobID] = h
		s.mu.Unlock()

		s.log.Info("Armed one-shot job",
			zap.Int64("jobID", job.ID), zap.Time("executeAt", *job.ExecuteAt))

	case payloads.ScheduleRecurring:
		schedule, err := cronParser.Parse(job.CronExpression)
		if err != nil {
			return core.Validationf("invalid cron expression %q: %v", job.CronExpression, err)
		}

		jobID := job.ID
		h := &handle{recurring: true}
		h.entry = s.cron.Schedule(schedule, cron.FuncJob(func() {
			s.ExecuteFanOut(context.Background(), jobID)
		}))
		s.install(jobID, h)

		s.log.Info("Armed recurring job",
			zap.Int64("jobID", job.ID), zap.String("cron", job.CronExpression))

	default:
		return core.Validationf("unknown schedule kind %q", job.Kind)
	}

	return nil
}

// Disarm cancels the job's handle, if any. A fan-out already in
// flight is allowed to complete.
func (s *Service) Disarm(jobID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.handles[jobID]; ok {
		s.cancelLocked(h)
		delete(s.handles, jobID)
	}
}

// ArmAll loads every active job and arms it. One-shot jobs already
// past their execution time are marked expired by Arm, not skipped
// silently. Individual failures are logged and do not stop the rest.
func (s *Service) ArmAll(ctx context.Context) error {
	jobs, err := s.store.ListActiveJobs(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := s.Arm(ctx, job); err != nil {
			s.log.Error("Failed to arm job at startup",
				zap.Int64("jobID", job.ID), zap.Error(err))
		}
	}

	s.log.Info("Startup reconciliation complete", zap.Int("jobs", len(jobs)))
	return nil
}

func (s *Service) Armed(jobID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handles[jobID]
	return ok
}

// Stop cancels every handle and stops the cron runner. Running fire
// callbacks are not interrupted.
func (s *Service) Stop() {
	s.mu.Lock()
	for id, h := range s.handles {
		s.cancelLocked(h)
		delete(s.handles, id)
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// install replaces any existing handle for the id, cancelling it
// first so timers are never leaked.
func (s *Service) install(jobID int64, h *handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.handles[jobID]; ok {
		s.cancelLocked(old)
	}
	s.handles[jobID] = h
}

// removeHandle drops the handle after a one-shot fire, but only if it
// is still the installed one; a concurrent re-arm must not lose its
// fresh handle.
func (s *Service) removeHandle(jobID int64, h *handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.handles[jobID]; ok && cur == h {
		delete(s.handles, jobID)
	}
}

func (s *Service) cancelLocked(h *handle) {
	if h.timer != nil {
		h.timer.Stop()
	}
	if h.recurring {
		s.cron.Remove(h.entry)
	}
}
