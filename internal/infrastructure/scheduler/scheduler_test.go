package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/faktura/backend/internal/infrastructure/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingExecutor fails the first failFirst attempts of every job
type countingExecutor struct {
	calls     atomic.Int32
	failFirst int32
	panics    bool
}

func (e *countingExecutor) Execute(ctx context.Context, job *Job) error {
	n := e.calls.Add(1)
	if e.panics {
		panic("boom")
	}
	if n <= e.failFirst {
		return errors.New("transient")
	}
	return nil
}

func testConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:           true,
		MaxConcurrentJobs: 2,
		JobTimeout:        time.Second,
		RetryAttempts:     2,
		RetryDelay:        5 * time.Millisecond,
	}
}

func startScheduler(t *testing.T, cfg config.SchedulerConfig, exec JobExecutor) *Scheduler {
	t.Helper()
	s := NewScheduler(cfg, exec, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, s.Stop(ctx))
	})
	return s
}

func newDunningJob(retries int) *Job {
	return NewJob(JobKindDunningRun, uuid.New(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), retries)
}

func TestScheduler_ExecutesJob(t *testing.T) {
	exec := &countingExecutor{}
	s := startScheduler(t, testConfig(), exec)

	require.NoError(t, s.Submit(newDunningJob(s.RetryAttempts())))
	require.Eventually(t, func() bool { return exec.calls.Load() == 1 }, time.Second, time.Millisecond)
}

func TestScheduler_Retries(t *testing.T) {
	tests := []struct {
		name      string
		failFirst int32
		want      int32
	}{
		{"succeeds on second attempt", 1, 2},
		{"succeeds on last attempt", 2, 3},
		{"gives up after retry budget", 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &countingExecutor{failFirst: tt.failFirst}
			s := startScheduler(t, testConfig(), exec)

			require.NoError(t, s.Submit(newDunningJob(s.RetryAttempts())))
			require.Eventually(t, func() bool { return exec.calls.Load() == tt.want }, time.Second, time.Millisecond)
			time.Sleep(30 * time.Millisecond)
			assert.Equal(t, tt.want, exec.calls.Load())
		})
	}
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	exec := &countingExecutor{panics: true}
	cfg := testConfig()
	cfg.RetryAttempts = 0
	s := startScheduler(t, cfg, exec)

	require.NoError(t, s.Submit(newDunningJob(0)))
	require.NoError(t, s.Submit(newDunningJob(0)))
	require.Eventually(t, func() bool { return exec.calls.Load() == 2 }, time.Second, time.Millisecond)
}

func TestScheduler_SubmitWhenStopped(t *testing.T) {
	s := NewScheduler(testConfig(), &countingExecutor{}, nil)
	assert.ErrorIs(t, s.Submit(newDunningJob(0)), ErrSchedulerNotRunning)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.ErrorIs(t, s.Submit(newDunningJob(0)), ErrSchedulerNotRunning)
}

func TestScheduler_StopCancelsPendingRetry(t *testing.T) {
	exec := &countingExecutor{failFirst: 100}
	cfg := testConfig()
	cfg.RetryDelay = time.Hour
	s := NewScheduler(cfg, exec, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.Submit(newDunningJob(3)))
	require.Eventually(t, func() bool { return exec.calls.Load() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, int32(1), exec.calls.Load())
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(config.SchedulerConfig{RetryAttempts: -1}, &countingExecutor{}, nil)
	assert.Equal(t, 3, s.config.MaxConcurrentJobs)
	assert.Equal(t, 30*time.Minute, s.config.JobTimeout)
	assert.Equal(t, 0, s.RetryAttempts())
}

type recordingSubmitter struct {
	mu   sync.Mutex
	jobs []*Job
	err  error
}

func (r *recordingSubmitter) Submit(job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *recordingSubmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

type staticTenants struct {
	ids []uuid.UUID
	err error
}

func (s staticTenants) FindActiveIDs(context.Context) ([]uuid.UUID, error) {
	return s.ids, s.err
}

// flakyTenants fails the first lookups before answering
type flakyTenants struct {
	mu       sync.Mutex
	failures int
	calls    int
	ids      []uuid.UUID
}

func (f *flakyTenants) FindActiveIDs(context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("db down")
	}
	return f.ids, nil
}

func berlinTrigger(t *testing.T, sub JobSubmitter, tenants TenantProvider) *CronTrigger {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return NewCronTrigger(CronTriggerConfig{Hour: 6, Minute: 30, Location: loc}, sub, tenants, 2, nil)
}

func TestCronTrigger_ShouldRun(t *testing.T) {
	c := berlinTrigger(t, &recordingSubmitter{}, staticTenants{})

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exact time in Berlin", time.Date(2026, 1, 15, 5, 30, 0, 0, time.UTC), true},
		{"one minute early", time.Date(2026, 1, 15, 5, 29, 0, 0, time.UTC), false},
		{"later the same day", time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC), true},
		{"same hour later minute", time.Date(2026, 1, 15, 5, 45, 0, 0, time.UTC), true},
		{"06:30 UTC is 07:30 in Berlin", time.Date(2026, 1, 15, 6, 30, 0, 0, time.UTC), true},
		{"summer time offset", time.Date(2026, 7, 15, 4, 29, 0, 0, time.UTC), false},
		{"summer time exact", time.Date(2026, 7, 15, 4, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.shouldRun(tt.now))
		})
	}
}

func TestCronTrigger_FiresOncePerDay(t *testing.T) {
	sub := &recordingSubmitter{}
	tenants := staticTenants{ids: []uuid.UUID{uuid.New(), uuid.New()}}
	c := berlinTrigger(t, sub, tenants)

	clock := time.Date(2026, 3, 2, 5, 31, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.checkAndTrigger(context.Background())
	c.checkAndTrigger(context.Background())
	require.Equal(t, 2, sub.count())

	for _, job := range sub.jobs {
		assert.Equal(t, JobKindDunningRun, job.Kind)
		assert.Equal(t, "2026-03-02", job.RunDate.Format(time.DateOnly))
		assert.Equal(t, 2, job.MaxRetries)
	}

	clock = clock.Add(24 * time.Hour)
	c.checkAndTrigger(context.Background())
	assert.Equal(t, 4, sub.count())
	assert.Equal(t, "2026-03-03", sub.jobs[3].RunDate.Format(time.DateOnly))
}

func TestCronTrigger_RetriesFailedLookupSameDay(t *testing.T) {
	sub := &recordingSubmitter{}
	tenants := &flakyTenants{failures: 1, ids: []uuid.UUID{uuid.New()}}
	c := berlinTrigger(t, sub, tenants)

	clock := time.Date(2026, 3, 2, 5, 31, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.checkAndTrigger(context.Background())
	assert.Zero(t, sub.count())
	assert.True(t, c.shouldRun(clock))

	clock = clock.Add(time.Minute)
	c.checkAndTrigger(context.Background())
	require.Equal(t, 1, sub.count())
	assert.Equal(t, "2026-03-02", sub.jobs[0].RunDate.Format(time.DateOnly))

	c.checkAndTrigger(context.Background())
	assert.Equal(t, 1, sub.count())
	assert.Equal(t, 2, tenants.calls)
}

func TestCronTrigger_RunDateFollowsLocation(t *testing.T) {
	sub := &recordingSubmitter{}
	c := berlinTrigger(t, sub, staticTenants{ids: []uuid.UUID{uuid.New()}})
	// 23:30 UTC on March 1st is already March 2nd in Berlin
	c.config.Hour, c.config.Minute = 0, 15
	c.now = func() time.Time { return time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC) }

	c.checkAndTrigger(context.Background())
	require.Equal(t, 1, sub.count())
	assert.Equal(t, "2026-03-02", sub.jobs[0].RunDate.Format(time.DateOnly))
}

func TestCronTrigger_TriggerNow(t *testing.T) {
	runDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("tenant lookup fails", func(t *testing.T) {
		c := berlinTrigger(t, &recordingSubmitter{}, staticTenants{err: errors.New("db down")})
		_, err := c.TriggerNow(context.Background(), runDate)
		assert.Error(t, err)
	})

	t.Run("submit failures are skipped", func(t *testing.T) {
		sub := &recordingSubmitter{err: ErrJobQueueFull}
		c := berlinTrigger(t, sub, staticTenants{ids: []uuid.UUID{uuid.New()}})
		queued, err := c.TriggerNow(context.Background(), runDate)
		require.NoError(t, err)
		assert.Zero(t, queued)
	})
}

func TestCronTrigger_StartStop(t *testing.T) {
	c := berlinTrigger(t, &recordingSubmitter{}, staticTenants{})
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
}

func TestDunningJobExecutor(t *testing.T) {
	tenantID := uuid.New()
	var gotTenant uuid.UUID
	exec := NewDunningJobExecutor(func(ctx context.Context, id uuid.UUID, runDate time.Time) error {
		gotTenant = id
		return nil
	})

	job := NewJob(JobKindDunningRun, tenantID, time.Now(), 0)
	require.NoError(t, exec.Execute(context.Background(), job))
	assert.Equal(t, tenantID, gotTenant)

	job.Kind = "REPORT"
	assert.ErrorIs(t, exec.Execute(context.Background(), job), ErrUnknownJobKind)
}

func TestSchedulerWithDunningExecutor(t *testing.T) {
	var runs atomic.Int32
	exec := NewDunningJobExecutor(func(ctx context.Context, id uuid.UUID, runDate time.Time) error {
		runs.Add(1)
		return nil
	})
	s := startScheduler(t, testConfig(), exec)
	c := berlinTrigger(t, s, staticTenants{ids: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}})

	queued, err := c.TriggerNow(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, queued)
	require.Eventually(t, func() bool { return runs.Load() == 3 }, time.Second, time.Millisecond)
}
