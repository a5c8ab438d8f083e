// Package scheduler runs the organizer on a fixed wall-clock interval.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RunFunc is one full organizer pass.
type RunFunc func(ctx context.Context) error

// Scheduler invokes a RunFunc immediately and then on every interval tick.
// An error or panic escaping a run is logged and the loop continues; a
// single bad run must not take the process down.
type Scheduler struct {
	interval time.Duration
}

func New(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, fn RunFunc) {
	slog.InfoContext(ctx, "scheduler started", "interval", s.interval)

	s.runOnce(ctx, fn)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			s.runOnce(ctx, fn)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, fn RunFunc) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "run panicked", "panic", fmt.Sprint(r))
		}
	}()

	if err := fn(ctx); err != nil {
		slog.ErrorContext(ctx, "run failed", "error", err)
	}
}
