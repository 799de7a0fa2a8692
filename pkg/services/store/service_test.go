package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

func newTestStore(t *testing.T) *Service {
	t.Helper()

	log, err := logger.New(true)
	require.NoError(t, err)

	s, err := New(context.Background(), "sqlite", ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Init(context.Background(), "admin", "admin123", "admin@example.com"))
	return s
}

func seedJob(t *testing.T, s *Service) *payloads.ScheduledJob {
	t.Helper()

	job := &payloads.ScheduledJob{
		Name:                "nightly",
		BuildServerConfigID: 1,
		Targets:             []string{"folder/job/A", "folder/job/B"},
		TargetParameters: map[string]payloads.Parameters{
			"folder/job/A": {"X": "1"},
			"folder/job/B": {},
		},
		Kind:           payloads.ScheduleRecurring,
		CronExpression: "0 2 * * *",
		Status:         payloads.JobStatusActive,
	}

	id, err := s.CreateJob(context.Background(), job)
	require.NoError(t, err)
	job.ID = id
	return job
}

func TestJobRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedJob(t, s)

	got, err := s.GetJob(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, []string{"folder/job/A", "folder/job/B"}, got.Targets)
	assert.Equal(t, "1", got.TargetParameters["folder/job/A"]["X"])
	assert.Empty(t, got.TargetParameters["folder/job/B"])
	assert.Equal(t, payloads.ScheduleRecurring, got.Kind)
	assert.Equal(t, "0 2 * * *", got.CronExpression)
	assert.Nil(t, got.LastExecutionAt)
}

func TestGetJobNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetJob(context.Background(), 999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateJob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)
	job.Name = "nightly-v2"
	job.Targets = []string{"folder/job/A"}
	job.TargetParameters = map[string]payloads.Parameters{"folder/job/A": {"X": "2"}}

	require.NoError(t, s.UpdateJob(ctx, job))

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "nightly-v2", got.Name)
	assert.Equal(t, []string{"folder/job/A"}, got.Targets)
	assert.Equal(t, "2", got.TargetParameters["folder/job/A"]["X"])

	missing := *job
	missing.ID = 999
	assert.ErrorIs(t, s.UpdateJob(ctx, &missing), core.ErrNotFound)
}

func TestJobStatusTransitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)

	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, payloads.JobStatusInactive))
	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, payloads.JobStatusInactive, got.Status)

	active, err := s.ListActiveJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, payloads.JobStatusActive))
	active, err = s.ListActiveJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestTouchLastExecution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.TouchLastExecution(ctx, job.ID, at))

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastExecutionAt)
	assert.True(t, got.LastExecutionAt.Equal(at))
}

func TestHistoryLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)

	id, err := s.AppendHistory(ctx, &payloads.ExecutionHistoryEntry{
		JobID:     job.ID,
		Status:    payloads.ExecutionStarted,
		StartTime: time.Now(),
	})
	require.NoError(t, err)

	entries, err := s.ListHistoryByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, payloads.ExecutionStarted, entries[0].Status)
	assert.Nil(t, entries[0].EndTime)

	require.NoError(t, s.CompleteHistory(ctx, id, payloads.ExecutionPartialSuccess, time.Now(),
		"1/2 targets triggered successfully"))

	// The attempt still owns exactly one row.
	entries, err = s.ListHistoryByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, payloads.ExecutionPartialSuccess, entries[0].Status)
	require.NotNil(t, entries[0].EndTime)
	assert.Contains(t, entries[0].LogOutput, "1/2 targets")
}

func TestHistorySurvivesJobDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)

	id, err := s.AppendHistory(ctx, &payloads.ExecutionHistoryEntry{
		JobID:     job.ID,
		Status:    payloads.ExecutionStarted,
		StartTime: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, s.CompleteHistory(ctx, id, payloads.ExecutionSuccess, time.Now(), "ok"))

	require.NoError(t, s.DeleteJob(ctx, job.ID))

	_, err = s.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	entries, err := s.ListHistoryByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := seedJob(t, s)
	for i := 0; i < 5; i++ {
		_, err := s.AppendHistory(ctx, &payloads.ExecutionHistoryEntry{
			JobID:     job.ID,
			Status:    payloads.ExecutionSuccess,
			StartTime: time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := s.ListHistory(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestBuildServerLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBuildServer(ctx, &payloads.BuildServer{
		Name:     "ci",
		URL:      "https://jenkins.example.com",
		Username: "bot",
		Token:    "secret",
	})
	require.NoError(t, err)

	got, err := s.GetBuildServer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ci", got.Name)
	assert.Equal(t, "secret", got.Token)

	servers, err := s.ListBuildServers(ctx)
	require.NoError(t, err)
	assert.Len(t, servers, 1)

	require.NoError(t, s.DeleteBuildServer(ctx, id))
	_, err = s.GetBuildServer(ctx, id)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteBuildServerStillReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBuildServer(ctx, &payloads.BuildServer{Name: "ci", URL: "https://ci"})
	require.NoError(t, err)

	job := &payloads.ScheduledJob{
		Name:                "uses-ci",
		BuildServerConfigID: id,
		Targets:             []string{"app"},
		TargetParameters:    map[string]payloads.Parameters{"app": {}},
		Kind:                payloads.ScheduleRecurring,
		CronExpression:      "@hourly",
		Status:              payloads.JobStatusActive,
	}
	_, err = s.CreateJob(ctx, job)
	require.NoError(t, err)

	err = s.DeleteBuildServer(ctx, id)
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
}

func TestAdminSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("admin123")))

	// Re-running Init must not duplicate or overwrite the account.
	require.NoError(t, s.Init(ctx, "admin", "different", ""))
	again, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, again.PasswordHash)
}
