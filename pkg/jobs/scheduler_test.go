package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsImmediately(t *testing.T) {
	var runs int64
	task := func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	}

	s := NewScheduler("test", task, time.Hour, nil)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerTicks(t *testing.T) {
	var runs int64
	task := func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	}

	s := NewScheduler("test", task, 20*time.Millisecond, nil)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerStopWaitsForLoop(t *testing.T) {
	task := func(ctx context.Context) error { return errors.New("always fails") }

	s := NewScheduler("failing", task, 10*time.Millisecond, nil)
	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	// Stop is idempotent.
	s.Stop()
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	var runs int64
	task := func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	}

	s := NewScheduler("once", task, time.Hour, nil)
	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 1
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&runs))
}
