package model

// ActionCounts holds the raw per-type totals of a user's history.
type ActionCounts struct {
	Added            int `json:"added"`
	Completed        int `json:"completed"`
	DeletedPending   int `json:"deleted_pending"`
	DeletedCompleted int `json:"deleted_completed"`
}

// Add counts one action. Unknown types are ignored.
func (c *ActionCounts) Add(a ActionType) {
	switch a {
	case ActionAdded:
		c.Added++
	case ActionCompleted:
		c.Completed++
	case ActionDeletedPending:
		c.DeletedPending++
	case ActionDeletedCompleted:
		c.DeletedCompleted++
	}
}

// PendingBase is the number of added items that were not deleted before being bought.
func (c ActionCounts) PendingBase() int {
	return c.Added - c.DeletedPending
}

// CompletionRate is round(100*completed/pendingBase), rounding halves up, or 0 when
// the pending base is not positive. Integer arithmetic keeps every caller exact.
func (c ActionCounts) CompletionRate() int {
	base := c.PendingBase()
	if base <= 0 {
		return 0
	}
	return (200*c.Completed + base) / (2 * base)
}

// Stats derives the historical stats. TotalAdded is the net added count.
func (c ActionCounts) Stats() HistoricalStats {
	return HistoricalStats{
		TotalAdded:     c.PendingBase(),
		TotalCompleted: c.Completed,
		TotalDeleted:   c.DeletedPending + c.DeletedCompleted,
		CompletionRate: c.CompletionRate(),
	}
}

type HistoricalStats struct {
	TotalAdded     int `json:"total_added"`
	TotalCompleted int `json:"total_completed"`
	TotalDeleted   int `json:"total_deleted"`
	CompletionRate int `json:"completion_rate"`
}

// UserStats is the display form of HistoricalStats.
type UserStats struct {
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
	PendingItems   int `json:"pending_items"`
	CompletionRate int `json:"completion_rate"`
}

func (h HistoricalStats) UserStats() UserStats {
	return UserStats{
		TotalItems:     h.TotalAdded,
		CompletedItems: h.TotalCompleted,
		PendingItems:   h.TotalAdded,
		CompletionRate: h.CompletionRate,
	}
}
