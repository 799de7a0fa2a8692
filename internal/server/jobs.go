package server

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/scheduler"
)

type jobRequest struct {
	Name                string                         `json:"name"`
	BuildServerConfigID int64                          `json:"buildServerConfigId"`
	Targets             []string                       `json:"targets"`
	TargetParameters    map[string]payloads.Parameters `json:"job_configs"`
	DefaultParameters   payloads.Parameters            `json:"parameters"`
	Kind                payloads.ScheduleKind          `json:"scheduleKind"`
	CronExpression      string                         `json:"cronExpression"`
	ExecuteAt           *time.Time                     `json:"executeAt"`
}

// job builds the canonical job from the request. Callers that omit
// the target list but provide per-target parameters get the sorted
// config keys as targets.
func (r *jobRequest) job() *payloads.ScheduledJob {
	targets := r.Targets
	if len(targets) == 0 && len(r.TargetParameters) > 0 {
		for target := range r.TargetParameters {
			targets = append(targets, target)
		}
		sort.Strings(targets)
	}

	configs := r.TargetParameters
	if configs == nil {
		configs = map[string]payloads.Parameters{}
	}

	return &payloads.ScheduledJob{
		Name:                r.Name,
		BuildServerConfigID: r.BuildServerConfigID,
		Targets:             targets,
		TargetParameters:    configs,
		DefaultParameters:   r.DefaultParameters,
		Kind:                r.Kind,
		CronExpression:      r.CronExpression,
		ExecuteAt:           r.ExecuteAt,
		Status:              payloads.JobStatusActive,
	}
}

func (s *Server) handleListJobs(c echo.Context) error {
	jobs, err := s.store.ListJobs(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

func (s *Server) handleGetJob(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	job, err := s.store.GetJob(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (s *Server) handleCreateJob(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	job := req.job()
	if err := scheduler.ValidateJob(job); err != nil {
		return s.respondError(c, err)
	}

	ctx := c.Request().Context()

	id, err := s.store.CreateJob(ctx, job)
	if err != nil {
		return s.respondError(c, err)
	}
	job.ID = id

	if err := s.registry.Arm(ctx, job); err != nil {
		return s.respondError(c, err)
	}

	created, err := s.store.GetJob(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	s.log.Info("Scheduled job created", zap.Int64("jobID", id), zap.String("name", job.Name))
	return c.JSON(http.StatusCreated, created)
}

// handleUpdateJob replaces the job definition. An update reactivates
// the job and re-arms its trigger; an expired one-shot gets a fresh
// chance with its new execution time.
func (s *Server) handleUpdateJob(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	existing, err := s.store.GetJob(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	job := req.job()
	job.ID = id
	job.CreatedAt = existing.CreatedAt
	job.LastExecutionAt = existing.LastExecutionAt

	if err := scheduler.ValidateJob(job); err != nil {
		return s.respondError(c, err)
	}

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return s.respondError(c, err)
	}

	if err := s.registry.Arm(ctx, job); err != nil {
		return s.respondError(c, err)
	}

	updated, err := s.store.GetJob(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	s.log.Info("Scheduled job updated", zap.Int64("jobID", id))
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteJob(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	s.registry.Disarm(id)

	// History rows for the job are kept on purpose.
	if err := s.store.DeleteJob(c.Request().Context(), id); err != nil {
		return s.respondError(c, err)
	}

	s.log.Info("Scheduled job deleted", zap.Int64("jobID", id))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUpdateJobStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	var req struct {
		Status payloads.JobStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if req.Status != payloads.JobStatusActive && req.Status != payloads.JobStatusInactive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be \"active\" or \"inactive\""})
	}

	ctx := c.Request().Context()

	if err := s.store.UpdateJobStatus(ctx, id, req.Status); err != nil {
		return s.respondError(c, err)
	}

	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	if req.Status == payloads.JobStatusActive {
		if err := s.registry.Arm(ctx, job); err != nil {
			return s.respondError(c, err)
		}
	} else {
		s.registry.Disarm(id)
	}

	s.log.Info("Scheduled job status changed",
		zap.Int64("jobID", id), zap.String("status", string(req.Status)))
	return c.JSON(http.StatusOK, job)
}

// handleExecuteJob fires the fan-out immediately. It works on
// inactive and expired jobs too; manual execution is independent of
// the armed trigger.
func (s *Server) handleExecuteJob(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.registry.RunNow(c.Request().Context(), id)
	if err != nil && result == nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.Validationf("invalid id %q", c.Param(name))
	}
	return id, nil
}
