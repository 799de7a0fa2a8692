package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
	mock_library "github.com/cronforge/jenkins-scheduler/pkg/services/library/mock"
)

// fakeStore is an in-memory Store; timer callbacks hit it from their
// own goroutines, so every method locks.
type fakeStore struct {
	mu      sync.Mutex
	jobs    map[int64]*payloads.ScheduledJob
	servers map[int64]*payloads.BuildServer
	history map[int64]*payloads.ExecutionHistoryEntry
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:    map[int64]*payloads.ScheduledJob{},
		servers: map[int64]*payloads.BuildServer{},
		history: map[int64]*payloads.ExecutionHistoryEntry{},
	}
}

func (f *fakeStore) addJob(job *payloads.ScheduledJob) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
}

func (f *fakeStore) addServer(server *payloads.BuildServer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.servers[server.ID] = server
}

func (f *fakeStore) jobStatus(id int64) payloads.JobStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id].Status
}

func (f *fakeStore) lastExecution(id int64) *time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id].LastExecutionAt
}

func (f *fakeStore) historyEntries() []*payloads.ExecutionHistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]*payloads.ExecutionHistoryEntry, 0, len(f.history))
	for _, e := range f.history {
		copied := *e
		entries = append(entries, &copied)
	}
	return entries
}

func (f *fakeStore) GetJob(_ context.Context, id int64) (*payloads.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %d: %w", id, core.ErrNotFound)
	}
	copied := *job
	return &copied, nil
}

func (f *fakeStore) ListActiveJobs(context.Context) ([]*payloads.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var jobs []*payloads.ScheduledJob
	for _, job := range f.jobs {
		if job.Status == payloads.JobStatusActive {
			copied := *job
			jobs = append(jobs, &copied)
		}
	}
	return jobs, nil
}

func (f *fakeStore) UpdateJobStatus(_ context.Context, id int64, status payloads.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return core.ErrNotFound
	}
	job.Status = status
	return nil
}

func (f *fakeStore) TouchLastExecution(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.LastExecutionAt = &at
	}
	return nil
}

func (f *fakeStore) AppendHistory(_ context.Context, entry *payloads.ExecutionHistoryEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	copied := *entry
	copied.ID = f.nextID
	f.history[f.nextID] = &copied
	return f.nextID, nil
}

func (f *fakeStore) CompleteHistory(_ context.Context, id int64, status payloads.ExecutionStatus, endTime time.Time, logOutput string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.history[id]
	if !ok {
		return core.ErrNotFound
	}
	entry.Status = status
	entry.EndTime = &endTime
	entry.LogOutput = logOutput
	return nil
}

func (f *fakeStore) GetBuildServer(_ context.Context, id int64) (*payloads.BuildServer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	server, ok := f.servers[id]
	if !ok {
		return nil, fmt.Errorf("jenkins config %d: %w", id, core.ErrNotFound)
	}
	copied := *server
	return &copied, nil
}

func (f *fakeStore) CreateJob(context.Context, *payloads.ScheduledJob) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeStore) ListJobs(context.Context) ([]*payloads.ScheduledJob, error)   { return nil, nil }
func (f *fakeStore) UpdateJob(context.Context, *payloads.ScheduledJob) error      { return nil }
func (f *fakeStore) DeleteJob(context.Context, int64) error                       { return nil }
func (f *fakeStore) ListHistory(context.Context, int) ([]*payloads.ExecutionHistoryEntry, error) {
	return nil, nil
}
func (f *fakeStore) ListHistoryByJob(context.Context, int64) ([]*payloads.ExecutionHistoryEntry, error) {
	return nil, nil
}
func (f *fakeStore) CreateBuildServer(context.Context, *payloads.BuildServer) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeStore) ListBuildServers(context.Context) ([]*payloads.BuildServer, error) {
	return nil, nil
}
func (f *fakeStore) DeleteBuildServer(context.Context, int64) error { return nil }
func (f *fakeStore) GetUser(context.Context, int64) (*payloads.User, error) {
	return nil, core.ErrNotFound
}
func (f *fakeStore) GetUserByUsername(context.Context, string) (*payloads.User, error) {
	return nil, core.ErrNotFound
}
func (f *fakeStore) Close() error { return nil }

var _ library.Store = (*fakeStore)(nil)

func newTestRegistry(t *testing.T, store library.Store, client library.BuildClient) *Service {
	t.Helper()

	log, err := logger.New(true)
	require.NoError(t, err)

	reg := New(store, func(*payloads.BuildServer) library.BuildClient { return client }, log)
	t.Cleanup(reg.Stop)
	return reg
}

func futureTime(d time.Duration) *time.Time {
	at := time.Now().Add(d)
	return &at
}

func onceJob(id int64, at *time.Time) *payloads.ScheduledJob {
	return &payloads.ScheduledJob{
		ID:                  id,
		Name:                "once",
		BuildServerConfigID: 1,
		Targets:             []string{"team/job/app"},
		TargetParameters:    map[string]payloads.Parameters{"team/job/app": {"BRANCH": "main"}},
		Kind:                payloads.ScheduleOnce,
		ExecuteAt:           at,
		Status:              payloads.JobStatusActive,
	}
}

func TestValidateJob(t *testing.T) {
	base := func() *payloads.ScheduledJob { return onceJob(1, futureTime(time.Hour)) }

	t.Run("valid once", func(t *testing.T) {
		assert.NoError(t, ValidateJob(base()))
	})

	t.Run("valid recurring", func(t *testing.T) {
		job := base()
		job.Kind = payloads.ScheduleRecurring
		job.ExecuteAt = nil
		job.CronExpression = "*/5 * * * * *"
		assert.NoError(t, ValidateJob(job))
	})

	t.Run("missing name", func(t *testing.T) {
		job := base()
		job.Name = "  "
		assert.True(t, core.IsValidation(ValidateJob(job)))
	})

	t.Run("missing targets", func(t *testing.T) {
		job := base()
		job.Targets = nil
		assert.True(t, core.IsValidation(ValidateJob(job)))
	})

	t.Run("once without executeAt", func(t *testing.T) {
		job := base()
		job.ExecuteAt = nil
		assert.True(t, core.IsValidation(ValidateJob(job)))
	})

	t.Run("recurring with bad cron", func(t *testing.T) {
		job := base()
		job.Kind = payloads.ScheduleRecurring
		job.CronExpression = "not a cron"
		assert.True(t, core.IsValidation(ValidateJob(job)))
	})

	t.Run("unknown kind", func(t *testing.T) {
		job := base()
		job.Kind = "sometimes"
		assert.True(t, core.IsValidation(ValidateJob(job)))
	})
}

func TestOnceJobFires(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := onceJob(1, futureTime(100*time.Millisecond))
	store.addJob(job)

	client.EXPECT().
		TriggerBuild(gomock.Any(), "team/job/app", payloads.Parameters{"BRANCH": "main"}).
		Return("http://jenkins/queue/item/1/", nil)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))
	assert.True(t, reg.Armed(job.ID))

	require.Eventually(t, func() bool {
		entries := store.historyEntries()
		return len(entries) == 1 && entries[0].Status.Terminal()
	}, 2*time.Second, 20*time.Millisecond)

	entries := store.historyEntries()
	assert.Equal(t, payloads.ExecutionSuccess, entries[0].Status)
	assert.NotNil(t, store.lastExecution(job.ID))

	// The handle is gone once a one-shot has fired.
	assert.Eventually(t, func() bool { return !reg.Armed(job.ID) },
		time.Second, 20*time.Millisecond)
}

func TestPastOnceJobExpiresInsteadOfArming(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	job := onceJob(1, futureTime(-time.Minute))
	store.addJob(job)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))

	assert.False(t, reg.Armed(job.ID))
	assert.Equal(t, payloads.JobStatusExpired, store.jobStatus(job.ID))
	assert.Empty(t, store.historyEntries())
}

func TestInactiveJobIsNotArmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	job := onceJob(1, futureTime(time.Hour))
	job.Status = payloads.JobStatusInactive
	store.addJob(job)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))
	assert.False(t, reg.Armed(job.ID))
}

func TestDisarmPreventsFire(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := onceJob(1, futureTime(150*time.Millisecond))
	store.addJob(job)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))
	reg.Disarm(job.ID)
	assert.False(t, reg.Armed(job.ID))

	time.Sleep(400 * time.Millisecond)
	assert.Empty(t, store.historyEntries())
}

func TestNearImmediateOnceFireReleasesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	client.EXPECT().
		TriggerBuild(gomock.Any(), "team/job/app", gomock.Any()).
		Return("", nil).
		AnyTimes()

	reg := newTestRegistry(t, store, client)

	// A delay short enough for the callback to race the arm itself;
	// the handle must still end up removed after every fire.
	for i := int64(1); i <= 5; i++ {
		job := onceJob(i, futureTime(time.Millisecond))
		store.addJob(job)
		require.NoError(t, reg.Arm(context.Background(), job))

		require.Eventually(t, func() bool { return !reg.Armed(i) },
			2*time.Second, time.Millisecond, "handle for job %d leaked past its fire", i)
	}
}

func TestRearmReplacesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := onceJob(1, futureTime(100*time.Millisecond))
	store.addJob(job)

	// Two arms, one surviving handle, exactly one fire.
	client.EXPECT().
		TriggerBuild(gomock.Any(), "team/job/app", gomock.Any()).
		Return("", nil).
		Times(1)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))
	require.NoError(t, reg.Arm(context.Background(), job))

	require.Eventually(t, func() bool {
		entries := store.historyEntries()
		return len(entries) == 1 && entries[0].Status.Terminal()
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Len(t, store.historyEntries(), 1)
}

func TestRecurringJobFiresRepeatedly(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := &payloads.ScheduledJob{
		ID:                  2,
		Name:                "every-second",
		BuildServerConfigID: 1,
		Targets:             []string{"app"},
		TargetParameters:    map[string]payloads.Parameters{"app": {}},
		Kind:                payloads.ScheduleRecurring,
		CronExpression:      "* * * * * *",
		Status:              payloads.JobStatusActive,
	}
	store.addJob(job)

	client.EXPECT().
		TriggerBuild(gomock.Any(), "app", gomock.Any()).
		Return("", nil).
		MinTimes(2)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.Arm(context.Background(), job))

	require.Eventually(t, func() bool {
		return len(store.historyEntries()) >= 2
	}, 5*time.Second, 50*time.Millisecond)

	assert.True(t, reg.Armed(job.ID))
	reg.Disarm(job.ID)
}

func TestRunNowPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := &payloads.ScheduledJob{
		ID:                  3,
		Name:                "fan-out",
		BuildServerConfigID: 1,
		Targets:             []string{"team/job/app", "team/job/lib"},
		TargetParameters: map[string]payloads.Parameters{
			"team/job/app": {"X": "1"},
			"team/job/lib": {},
		},
		Kind:           payloads.ScheduleRecurring,
		CronExpression: "@daily",
		Status:         payloads.JobStatusActive,
	}
	store.addJob(job)

	client.EXPECT().
		TriggerBuild(gomock.Any(), "team/job/app", payloads.Parameters{"X": "1"}).
		Return("http://jenkins/queue/item/9/", nil)
	client.EXPECT().
		TriggerBuild(gomock.Any(), "team/job/lib", payloads.Parameters{}).
		Return("", errors.New("jenkins returned 404 Not Found"))

	reg := newTestRegistry(t, store, client)

	result, err := reg.RunNow(context.Background(), job.ID)
	require.NoError(t, err)

	assert.Equal(t, payloads.ExecutionPartialSuccess, result.Status)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Targets, 2)
	assert.True(t, result.Targets[0].Success)
	assert.Equal(t, "http://jenkins/queue/item/9/", result.Targets[0].QueueLocation)
	assert.False(t, result.Targets[1].Success)

	entries := store.historyEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, payloads.ExecutionPartialSuccess, entries[0].Status)
	assert.Contains(t, entries[0].LogOutput, "1/2 targets triggered successfully")
	assert.NotNil(t, store.lastExecution(job.ID))
}

func TestRunNowDefaultParameterFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	store.addServer(&payloads.BuildServer{ID: 1, Name: "ci", URL: "http://jenkins"})
	job := &payloads.ScheduledJob{
		ID:                  4,
		Name:                "legacy-params",
		BuildServerConfigID: 1,
		Targets:             []string{"app"},
		TargetParameters:    map[string]payloads.Parameters{},
		DefaultParameters:   payloads.Parameters{"BRANCH": "develop"},
		Kind:                payloads.ScheduleRecurring,
		CronExpression:      "@daily",
		Status:              payloads.JobStatusActive,
	}
	store.addJob(job)

	client.EXPECT().
		TriggerBuild(gomock.Any(), "app", payloads.Parameters{"BRANCH": "develop"}).
		Return("", nil)

	reg := newTestRegistry(t, store, client)

	result, err := reg.RunNow(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, payloads.ExecutionSuccess, result.Status)
}

func TestRunNowUnresolvableConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	// No build server stored; no target may be contacted.
	job := onceJob(5, futureTime(time.Hour))
	store.addJob(job)

	reg := newTestRegistry(t, store, client)

	result, err := reg.RunNow(context.Background(), job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfigResolution)

	require.NotNil(t, result)
	assert.Equal(t, payloads.ExecutionFailed, result.Status)
	assert.Empty(t, result.Targets)

	entries := store.historyEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, payloads.ExecutionFailed, entries[0].Status)
	assert.Contains(t, entries[0].LogOutput, "failed to resolve build server configuration")
	assert.NotNil(t, store.lastExecution(job.ID))
}

func TestRunNowUnknownJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	reg := newTestRegistry(t, store, client)

	result, err := reg.RunNow(context.Background(), 999)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Nil(t, result)
	assert.Empty(t, store.historyEntries())
}

func TestArmAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_library.NewMockBuildClient(ctrl)
	store := newFakeStore()

	active := onceJob(1, futureTime(time.Hour))
	expiredSoon := onceJob(2, futureTime(-time.Minute))
	inactive := onceJob(3, futureTime(time.Hour))
	inactive.Status = payloads.JobStatusInactive

	store.addJob(active)
	store.addJob(expiredSoon)
	store.addJob(inactive)

	reg := newTestRegistry(t, store, client)
	require.NoError(t, reg.ArmAll(context.Background()))

	assert.True(t, reg.Armed(1))
	assert.False(t, reg.Armed(2))
	assert.Equal(t, payloads.JobStatusExpired, store.jobStatus(2))
	assert.False(t, reg.Armed(3))
}
