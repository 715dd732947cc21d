package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Notification represents a notification entity in the system.
type Notification struct {
	ID        uuid.UUID `json:"id"`         // unique identifier for the notification
	UserID    uuid.UUID `json:"user_id"`    // recipient user reference
	Title     string    `json:"title"`      // subject line / heading
	Body      string    `json:"body"`       // content of the notification
	Status    string    `json:"status"`     // current state: "pending", "sent" or "failed"
	CreatedAt time.Time `json:"created_at"` // timestamp when the notification was created
	UpdatedAt time.Time `json:"updated_at"` // timestamp when the notification was last updated
}

// IsTerminal reports whether status can no longer change.
func IsTerminal(status string) bool {
	return status == StatusSent || status == StatusFailed
}
