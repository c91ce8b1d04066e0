package store

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the eviction worker checks for idle sessions.
const DefaultSweepInterval = 5 * time.Minute

// StartEvictionWorker runs a background goroutine that periodically drops
// sessions idle longer than ttl. It returns immediately, without starting
// anything, when ttl is zero. The returned channel is closed once the
// worker has exited.
func StartEvictionWorker(ctx context.Context, sessions SessionStore, ttl, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if ttl <= 0 {
		close(done)
		return done
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		slog.Info("Eviction worker started", "interval", interval, "ttl", ttl)

		for {
			select {
			case now := <-ticker.C:
				sweep(sessions, now)
			case <-ctx.Done():
				slog.Info("Eviction worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
	return done
}

func sweep(sessions SessionStore, now time.Time) {
	evicted := sessions.EvictExpired(now)
	if evicted == 0 {
		return
	}
	slog.Info("Eviction worker dropped idle sessions", "count", evicted, "remaining", sessions.Len())
}
