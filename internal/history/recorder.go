// Package history records user actions to the append-only history log and
// derives each user's historical stats from it.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukerupert/superlista/internal/metrics"
	"github.com/dukerupert/superlista/internal/model"
)

// Backend is the remote side of the history log. remote.Client satisfies it.
type Backend interface {
	AppendHistory(ctx context.Context, entry model.HistoryEntry) error
	// HistoricalStats runs the server-side aggregation.
	HistoricalStats(ctx context.Context, userID string) (model.HistoricalStats, error)
	ListActionTypes(ctx context.Context, userID string) ([]model.ActionType, error)
}

// Recorder appends history entries and aggregates them.
type Recorder struct {
	backend Backend
	logger  *slog.Logger
	metrics *metrics.Collector
}

func NewRecorder(backend Backend, logger *slog.Logger, m *metrics.Collector) *Recorder {
	return &Recorder{backend: backend, logger: logger, metrics: m}
}

// Record appends one entry. A failure is logged and counted and returned so
// the caller can surface it, but it must never fail the mutation it audits.
func (r *Recorder) Record(ctx context.Context, entry model.HistoryEntry) error {
	if entry.UserID == "" {
		return nil
	}
	if err := r.backend.AppendHistory(ctx, entry); err != nil {
		r.metrics.RecordHistoryFailure(string(entry.ActionType))
		r.logger.Warn("record history",
			"user_id", entry.UserID,
			"action_type", entry.ActionType,
			"item", entry.ItemName,
			"error", err,
		)
		return fmt.Errorf("record %s: %w", entry.ActionType, err)
	}
	return nil
}

// Aggregate returns the user's historical stats, preferring the server-side
// aggregation and falling back to folding the raw action types locally.
func (r *Recorder) Aggregate(ctx context.Context, userID string) (model.HistoricalStats, error) {
	stats, err := r.backend.HistoricalStats(ctx, userID)
	if err == nil {
		return stats, nil
	}
	r.logger.Warn("historical stats rpc failed, folding locally", "user_id", userID, "error", err)

	actions, err := r.backend.ListActionTypes(ctx, userID)
	if err != nil {
		return model.HistoricalStats{}, fmt.Errorf("aggregate history: %w", err)
	}
	return Fold(actions).Stats(), nil
}

// Fold counts action types.
func Fold(actions []model.ActionType) model.ActionCounts {
	var c model.ActionCounts
	for _, a := range actions {
		c.Add(a)
	}
	return c
}
