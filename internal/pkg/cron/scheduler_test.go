package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var calls []string
	s.AddJob("first", time.Hour, func(context.Context) error {
		calls = append(calls, "first")
		return nil
	})
	s.AddJob("broken", time.Hour, func(context.Context) error {
		calls = append(calls, "broken")
		return errors.New("boom")
	})
	s.AddJob("panics", time.Hour, func(context.Context) error {
		calls = append(calls, "panics")
		panic("unexpected")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, []string{"first", "broken", "panics"}, calls)
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	gotNow time.Time
	closed int
	err    error
}

func (f *fakeAttendanceService) AutoCheckout(_ context.Context, now time.Time) (int, error) {
	f.gotNow = now
	return f.closed, f.err
}

func TestAttendanceJobs_AutoCheckout(t *testing.T) {
	now := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
	svc := &fakeAttendanceService{closed: 3}
	jobs := NewAttendanceJobs(svc)
	jobs.now = func() time.Time { return now }

	s := NewScheduler()
	jobs.RegisterJobs(s, time.Hour)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, now, svc.gotNow)

	svc.err = errors.New("db down")
	assert.ErrorContains(t, s.RunOnce(context.Background()), "auto checkout: db down")
}
