package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/superlista/internal/model"
)

// TokenStore keeps one push token per user.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Upsert(ctx context.Context, userID, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notification_tokens (user_id, token) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("upsert notification token: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, userID string) (*model.NotificationToken, error) {
	var t model.NotificationToken
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, token, updated_at FROM notification_tokens WHERE user_id = ?`, userID,
	).Scan(&t.UserID, &t.Token, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification token: %w", err)
	}
	return &t, nil
}

// ListExcept returns every registered token except the given user's.
func (s *TokenStore) ListExcept(ctx context.Context, userID string) ([]model.NotificationToken, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, token, updated_at FROM notification_tokens WHERE user_id <> ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notification tokens: %w", err)
	}
	defer rows.Close()

	var tokens []model.NotificationToken
	for rows.Next() {
		var t model.NotificationToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan notification token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *TokenStore) DeleteByToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notification_tokens WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete notification token: %w", err)
	}
	return nil
}
