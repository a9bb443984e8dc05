package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukerupert/superlista/internal/model"
)

// HistoryStore is the append-only user_stats_history table.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

const historyCols = `id, user_id, action_type, item_name, item_qty, item_unit, item_place, item_status, created_at`

func scanHistory(scanner interface{ Scan(...any) error }) (*model.HistoryEntry, error) {
	var e model.HistoryEntry
	err := scanner.Scan(&e.ID, &e.UserID, &e.ActionType, &e.ItemName, &e.ItemQty,
		&e.ItemUnit, &e.ItemPlace, &e.ItemStatus, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *HistoryStore) Append(ctx context.Context, entry model.HistoryEntry) (*model.HistoryEntry, error) {
	if !entry.ActionType.Valid() {
		return nil, &model.ValidationError{Field: "action_type", Message: fmt.Sprintf("unknown action %q", entry.ActionType)}
	}
	if entry.UserID == "" {
		return nil, &model.ValidationError{Field: "user_id", Message: "is required"}
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_stats_history (id, user_id, action_type, item_name, item_qty, item_unit, item_place, item_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, entry.UserID, entry.ActionType, entry.ItemName, entry.ItemQty, entry.ItemUnit, entry.ItemPlace, entry.ItemStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+historyCols+` FROM user_stats_history WHERE id = ?`, id)
	e, err := scanHistory(row)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return e, nil
}

// ListActionTypes returns the action_type column of every row for userID.
func (s *HistoryStore) ListActionTypes(ctx context.Context, userID string) ([]model.ActionType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_type FROM user_stats_history WHERE user_id = ? ORDER BY created_at ASC, rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	actions := []model.ActionType{}
	for rows.Next() {
		var a model.ActionType
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan action type: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// Counts aggregates a user's history server-side.
func (s *HistoryStore) Counts(ctx context.Context, userID string) (model.ActionCounts, error) {
	var c model.ActionCounts
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN action_type = 'added' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN action_type = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN action_type = 'deleted_pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN action_type = 'deleted_completed' THEN 1 ELSE 0 END), 0)
		 FROM user_stats_history WHERE user_id = ?`, userID,
	).Scan(&c.Added, &c.Completed, &c.DeletedPending, &c.DeletedCompleted)
	if err != nil {
		return model.ActionCounts{}, fmt.Errorf("count history: %w", err)
	}
	return c, nil
}
