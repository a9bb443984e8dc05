package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/superlista/internal/model"
)

func (c *Client) AppendHistory(ctx context.Context, entry model.HistoryEntry) error {
	return c.do(ctx, "append history", http.MethodPost, "/api/history", entry, nil)
}

func (c *Client) ListActionTypes(ctx context.Context, userID string) ([]model.ActionType, error) {
	var rows []struct {
		ActionType model.ActionType `json:"action_type"`
	}
	path := "/api/history?user_id=" + url.QueryEscape(userID)
	if err := c.do(ctx, "list history", http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	actions := make([]model.ActionType, 0, len(rows))
	for _, r := range rows {
		actions = append(actions, r.ActionType)
	}
	return actions, nil
}

// HistoricalStats calls the get_user_historical_stats RPC. An empty result
// set means no history and yields zero stats.
func (c *Client) HistoricalStats(ctx context.Context, userID string) (model.HistoricalStats, error) {
	var rows []model.HistoricalStats
	body := map[string]string{"user_uuid": userID}
	if err := c.do(ctx, "historical stats", http.MethodPost, "/api/rpc/get_user_historical_stats", body, &rows); err != nil {
		return model.HistoricalStats{}, err
	}
	if len(rows) == 0 {
		return model.HistoricalStats{}, nil
	}
	return rows[0], nil
}
