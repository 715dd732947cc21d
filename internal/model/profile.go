package model

import "github.com/google/uuid"

// UserProfile holds the contact endpoints of a user.
//
// Profiles are owned by the user-management service; this service only reads them.
// Empty fields mean the user has not configured that endpoint.
type UserProfile struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	TelegramChatID string    `json:"telegram_chat_id,omitempty"`
}
