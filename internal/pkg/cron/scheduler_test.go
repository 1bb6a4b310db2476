package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJob_InvalidSpec(t *testing.T) {
	s := NewScheduler(time.UTC, nil, time.Minute)

	err := s.AddJob("broken", "every day", func(ctx context.Context) error { return nil })

	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(time.UTC, nil, time.Minute)
	var ran []string

	require.NoError(t, s.AddJob("first", "0 0 * * *", func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	}))
	require.NoError(t, s.AddJob("failing", "0 1 * * *", func(ctx context.Context) error {
		ran = append(ran, "failing")
		return errors.New("boom")
	}))
	require.NoError(t, s.AddJob("last", "0 2 * * *", func(ctx context.Context) error {
		ran = append(ran, "last")
		return nil
	}))

	s.RunOnce(context.Background())

	// A failing job does not stop the others.
	assert.Equal(t, []string{"first", "failing", "last"}, ran)
}

func TestScheduler_SkipsWhenLockHeld(t *testing.T) {
	locker := NewLocalLocker()
	s := NewScheduler(time.UTC, locker, time.Minute)

	runs := 0
	require.NoError(t, s.AddJob("daily_report", "0 0 * * *", func(ctx context.Context) error {
		runs++
		return nil
	}))

	unlock, ok, err := locker.TryLock(context.Background(), lockKey("daily_report"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	s.RunOnce(context.Background())
	assert.Equal(t, 0, runs)

	require.NoError(t, unlock(context.Background()))
	s.RunOnce(context.Background())
	assert.Equal(t, 1, runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC, nil, time.Minute)
	require.NoError(t, s.AddJob("noop", "0 0 * * *", func(ctx context.Context) error { return nil }))

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestLocalLocker_Expiry(t *testing.T) {
	locker := NewLocalLocker()
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	locker.clock = func() time.Time { return now }
	ctx := context.Background()

	staleUnlock, ok, err := locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	require.True(t, ok)

	// Releasing the expired lease must not free the new holder.
	require.NoError(t, staleUnlock(ctx))
	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.False(t, ok)
}

type recordingReportService struct {
	report.ReportService
	daily, weekly, monthly time.Time
}

func (r *recordingReportService) GenerateDaily(ctx context.Context, day time.Time) (report.DailyReport, error) {
	r.daily = day
	return report.DailyReport{}, nil
}

func (r *recordingReportService) GenerateWeekly(ctx context.Context, weekStart time.Time) (report.WeeklyReport, error) {
	r.weekly = weekStart
	return report.WeeklyReport{}, nil
}

func (r *recordingReportService) GenerateMonthly(ctx context.Context, month time.Time) (report.MonthlyReport, error) {
	r.monthly = month
	return report.MonthlyReport{}, nil
}

func TestReportJobs_Periods(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	svc := &recordingReportService{}
	jobs := NewReportJobs(svc, ReportSchedule{Daily: "0 0 * * *", Weekly: "30 0 * * 1", Monthly: "0 1 1 * *"}, loc)
	// Monday 1 April 2024, 00:30 local; still Sunday 31 March in UTC.
	jobs.now = func() time.Time { return time.Date(2024, 3, 31, 17, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, jobs.DailyReport(ctx))
	require.NoError(t, jobs.WeeklyReport(ctx))
	require.NoError(t, jobs.MonthlyReport(ctx))

	assert.Equal(t, "2024-03-31", svc.daily.Format("2006-01-02"))
	assert.Equal(t, "2024-03-25", svc.weekly.Format("2006-01-02"))
	assert.Equal(t, "2024-03", svc.monthly.Format("2006-01"))
}

func TestReportJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(time.UTC, nil, time.Minute)
	jobs := NewReportJobs(&recordingReportService{}, ReportSchedule{Daily: "0 0 * * *", Weekly: "30 0 * * 1", Monthly: "0 1 1 * *"}, time.UTC)

	require.NoError(t, jobs.RegisterJobs(s))

	var names []string
	for _, j := range s.Jobs() {
		names = append(names, j.Name)
	}
	assert.Equal(t, []string{"daily_report", "weekly_report", "monthly_report"}, names)
}
