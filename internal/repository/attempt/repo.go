// Package attempt is the append-only log of delivery attempts.
package attempt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/channel-notifier/internal/model"
)

// Repository appends and lists attempt records. Records are never updated or deleted.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new attempt log repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Execer is satisfied by *dbpg.DB and *sql.Tx, so attempts can be written
// inside a caller's transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Append stores one attempt record.
func (r *Repository) Append(ctx context.Context, rec model.AttemptRecord) error {
	return Insert(ctx, r.db, rec)
}

// Insert writes rec through ex.
func Insert(ctx context.Context, ex Execer, rec model.AttemptRecord) error {
	query := `
		INSERT INTO notification_attempts (
		    notification_id, channel, outcome, error_detail
		) VALUES ($1, $2, $3, $4);
    `

	detail := sql.NullString{String: rec.ErrorDetail, Valid: rec.ErrorDetail != ""}

	_, err := ex.ExecContext(ctx, query, rec.NotificationID, rec.Channel.String(), rec.Outcome, detail)
	if err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}

	return nil
}

// ListFor returns the attempts of a notification in the order they were made.
func (r *Repository) ListFor(ctx context.Context, notificationID uuid.UUID) ([]model.AttemptRecord, error) {
	query := `
		SELECT id, notification_id, channel, outcome, error_detail, created_at
		FROM notification_attempts
		WHERE notification_id = $1
		ORDER BY id;
    `

	rows, err := r.db.QueryContext(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	records := make([]model.AttemptRecord, 0)
	for rows.Next() {
		var (
			rec     model.AttemptRecord
			channel string
			detail  sql.NullString
		)

		if err := rows.Scan(&rec.ID, &rec.NotificationID, &channel, &rec.Outcome, &detail, &rec.CreatedAt); err != nil {
			return nil, err
		}

		rec.Channel, err = model.ParseChannel(channel)
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", rec.ID, err)
		}

		rec.ErrorDetail = detail.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}

	return records, nil
}
