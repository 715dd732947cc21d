package model

import (
	"time"

	"github.com/google/uuid"
)

// Attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AttemptRecord is an immutable audit entry for one delivery attempt.
type AttemptRecord struct {
	ID             int64     `json:"id"`
	NotificationID uuid.UUID `json:"notification_id"`
	Channel        Channel   `json:"channel"`
	Outcome        string    `json:"outcome"`
	ErrorDetail    string    `json:"error_detail,omitempty"` // empty on success
	CreatedAt      time.Time `json:"created_at"`
}
