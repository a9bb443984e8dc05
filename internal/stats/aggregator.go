// Package stats keeps the current user's display stats up to date.
package stats

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/refresh"
)

// Source aggregates a user's history. history.Recorder satisfies it.
type Source interface {
	Aggregate(ctx context.Context, userID string) (model.HistoricalStats, error)
}

// Aggregator caches UserStats for one user and recomputes on demand, on
// refresh-bus signals and on the shared refresh schedule.
type Aggregator struct {
	source Source
	logger *slog.Logger

	mu      sync.Mutex
	userID  string
	stats   model.UserStats
	loading bool
	err     error
}

func NewAggregator(source Source, logger *slog.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logger}
}

// Compute derives UserStats for userID without touching the cache. An empty
// userID yields zero stats and no backend call.
func (a *Aggregator) Compute(ctx context.Context, userID string) (model.UserStats, error) {
	if userID == "" {
		return model.UserStats{}, nil
	}
	hs, err := a.source.Aggregate(ctx, userID)
	if err != nil {
		return model.UserStats{}, err
	}
	return hs.UserStats(), nil
}

// SetUser switches the tracked user and recomputes immediately.
func (a *Aggregator) SetUser(ctx context.Context, userID string) error {
	a.mu.Lock()
	if a.userID != userID {
		a.userID = userID
		a.stats = model.UserStats{}
		a.err = nil
	}
	a.mu.Unlock()
	return a.Refresh(ctx)
}

// Refresh recomputes the tracked user's stats. On failure the previous value
// is kept and the error is exposed through Err.
func (a *Aggregator) Refresh(ctx context.Context) error {
	a.mu.Lock()
	userID := a.userID
	a.loading = true
	a.mu.Unlock()

	stats, err := a.Compute(ctx, userID)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if a.userID != userID {
		// User changed while computing; that SetUser owns the result.
		return nil
	}
	a.err = err
	if err != nil {
		a.logger.Warn("compute user stats", "user_id", userID, "error", err)
		return err
	}
	a.stats = stats
	return nil
}

// Follow recomputes on every signal from sub until ctx is done or the
// subscription is closed.
func (a *Aggregator) Follow(ctx context.Context, sub *refresh.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			a.Refresh(ctx)
		}
	}
}

func (a *Aggregator) Stats() model.UserStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *Aggregator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
