package reaper

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/mmk-account-menu/internal/testutil"
)

type countingTarget struct {
	calls atomic.Int32
	last  atomic.Int64
}

func (c *countingTarget) Reap(now time.Time) int {
	c.calls.Add(1)
	c.last.Store(now.UnixNano())
	return 2
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(RunnerOptions{Interval: time.Second})
	require.Error(t, err)

	_, err = NewRunner(RunnerOptions{Target: &countingTarget{}})
	require.Error(t, err)
}

func TestRunner_RunOnceUsesClock(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	target := &countingTarget{}
	r, err := NewRunner(RunnerOptions{
		Target:   target,
		Interval: time.Minute,
		Logger:   discardLogger(),
		Now:      testutil.FixedTimeFunc(fixed),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, r.RunOnce())
	assert.Equal(t, int32(1), target.calls.Load())
	assert.Equal(t, fixed.UnixNano(), target.last.Load())
}

func TestRunner_RunSweepsUntilCancelled(t *testing.T) {
	target := &countingTarget{}
	r, err := NewRunner(RunnerOptions{Target: target, Interval: 5 * time.Millisecond, Logger: discardLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return target.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

func TestRunner_RunReturnsDeadlineError(t *testing.T) {
	r, err := NewRunner(RunnerOptions{Target: &countingTarget{}, Interval: time.Hour, Logger: discardLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Run(ctx), context.DeadlineExceeded)
}
