package model

import "time"

type ActionType string

const (
	ActionAdded            ActionType = "added"
	ActionCompleted        ActionType = "completed"
	ActionDeletedPending   ActionType = "deleted_pending"
	ActionDeletedCompleted ActionType = "deleted_completed"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionAdded, ActionCompleted, ActionDeletedPending, ActionDeletedCompleted:
		return true
	}
	return false
}

// HistoryEntry is one append-only row of user_stats_history.
type HistoryEntry struct {
	ID         string     `json:"id,omitempty"`
	UserID     string     `json:"user_id"`
	ActionType ActionType `json:"action_type"`
	ItemName   string     `json:"item_name"`
	ItemQty    int        `json:"item_qty"`
	ItemUnit   string     `json:"item_unit"`
	ItemPlace  string     `json:"item_place"`
	ItemStatus string     `json:"item_status"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}

// NewHistoryEntry snapshots the item fields for an action performed by userID.
func NewHistoryEntry(userID string, action ActionType, item Item) HistoryEntry {
	return HistoryEntry{
		UserID:     userID,
		ActionType: action,
		ItemName:   item.Name,
		ItemQty:    item.Quantity,
		ItemUnit:   item.Unit,
		ItemPlace:  item.Place,
		ItemStatus: item.Status,
	}
}
