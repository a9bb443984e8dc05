package model

import "time"

// Notification type constants
const (
	NotifTypeItemAdded     = "item_added"
	NotifTypeItemCompleted = "item_completed"
)

// NotificationToken is a device push registration. There is at most one per user.
type NotificationToken struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}
