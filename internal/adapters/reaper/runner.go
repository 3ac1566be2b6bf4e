// Package reaper periodically unmounts account menus whose pages went away
// without saying so (crashed tabs, lost beacons).
package reaper

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"
)

// Target is anything that can drop state idle since before now.
// *httpx.Windows satisfies it.
type Target interface {
	Reap(now time.Time) int
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Target   Target        // Required
	Interval time.Duration // Required
	Logger   *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Runner calls Target.Reap on a fixed interval.
type Runner struct {
	target   Target
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Target == nil {
		return nil, errors.New("reap target is required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("reap interval must be positive")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		target:   opts.Target,
		interval: opts.Interval,
		logger:   opts.Logger.With("component", "menu_reaper"),
		now:      opts.Now,
	}, nil
}

// RunOnce performs a single sweep and returns how many widgets it unmounted.
func (r *Runner) RunOnce() int {
	return r.target.Reap(r.now())
}

// Run sweeps until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), the context error otherwise.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting reaper runner", "interval", r.interval)

	// Spread replicas that start together.
	r.waitWithJitter(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "reaper runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if n := r.RunOnce(); n > 0 {
				r.logger.DebugContext(ctx, "sweep finished", "unmounted", n)
			}
		}
	}
}

// waitWithJitter waits a random delay up to 10% of the interval.
func (r *Runner) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		r.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
