package core

// scheduler.go runs background maintenance for the session store.
//
// Idle sessions are discarded periodically so that abandoned rosters do not
// accumulate in memory. The sweeper is long-running and stops with its
// context.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 10 * time.Minute

// StartSessionSweeper discards expired sessions every interval until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	slog.Info("session sweeper started",
		"interval", interval.String(),
		"ttl", s.cfg.SessionTTL.String(),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// runSweep performs one expiry pass.
func (s *Service) runSweep() int {
	start := time.Now()
	removed := s.sessions.Sweep()
	if removed > 0 {
		slog.Info("expired sessions discarded",
			"sessions_removed", removed,
			"sessions_live", s.sessions.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		slog.Debug("session sweep completed", "sessions_live", s.sessions.Len())
	}
	return removed
}
