// Package profile reads user contact endpoints owned by the user-management service.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/channel-notifier/internal/model"
)

var ErrProfileNotFound = errors.New("profile not found")

// Repository provides read access to the user_profiles table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetByUserID returns the profile of the given user. NULL columns come back empty.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserProfile, error) {
	query := `
		SELECT user_id, email, phone, telegram_chat_id
		FROM user_profiles
		WHERE user_id = $1;
    `

	var (
		p                      model.UserProfile
		email, phone, telegram sql.NullString
	)

	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &email, &phone, &telegram)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserProfile{}, ErrProfileNotFound
		}

		return model.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Email = email.String
	p.Phone = phone.String
	p.TelegramChatID = telegram.String

	return p, nil
}
