package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/store"
)

// HousekeepingService periodically deletes expired credentials so the
// three token tables do not grow without bound. Flows never rely on the
// sweep for correctness; they check expiry on every lookup.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until the
// worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes expired records from all three credential sets. Each
// deletion is independent; a failure in one set won't stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := time.Now()
	var total int64

	sets := []struct {
		name string
		repo store.Tokens
	}{
		{"exchange_codes", s.Store.ExchangeCodes()},
		{"access_tokens", s.Store.AccessTokens()},
		{"refresh_tokens", s.Store.RefreshTokens()},
	}

	for _, set := range sets {
		n, err := set.repo.DeleteExpiredTokens(ctx, now)
		if err != nil {
			s.Logger.Error("failed to delete expired tokens",
				slog.String("set", set.name),
				slog.String("error", err.Error()))
			continue
		}
		total += n
	}

	s.Logger.Info("housekeeping sweep completed", slog.Int64("deleted", total))
}
