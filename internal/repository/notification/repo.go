package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/repository/attempt"
)

var (
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrNoNotificationsFound   = errors.New("no notifications found")
	ErrNotificationNotPending = errors.New("notification is not pending")
)

// Repository provides methods to interact with notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateNotification inserts a new pending notification and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, notification model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    user_id, title, body, status
		) VALUES ($1, $2, $3, $4)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query, notification.UserID, notification.Title, notification.Body, model.StatusPending,
	).Scan(&notification.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification.ID, nil
}

// GetNotificationByID loads a notification from the master node.
//
// Replicas may lag behind a status change, so dispatch reads never go to them.
func (r *Repository) GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT id, user_id, title, body, status, created_at, updated_at
		FROM notifications
		WHERE id = $1;
    `

	var n model.Notification
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Body, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// Finalize moves a pending notification to a terminal status and stores the
// closing attempt records in the same transaction.
//
// The status update runs first and holds the row lock, so of two concurrent
// finalizers only one commits. Nothing is written when the notification is
// missing or no longer pending; ErrNotificationNotPending is returned then.
func (r *Repository) Finalize(ctx context.Context, id uuid.UUID, status string, records []model.AttemptRecord) (err error) {
	query := `
		UPDATE notifications
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending';
    `

	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		err = ErrNotificationNotPending
		return err
	}

	for _, rec := range records {
		if err = attempt.Insert(ctx, tx, rec); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status change: %w", err)
	}

	return nil
}

// GetNotificationStatusByID retrieves the status of a notification by its ID.
func (r *Repository) GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT status
		FROM notifications
		WHERE id = $1;
    `

	var status string
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotificationNotFound
		}

		return "", fmt.Errorf("failed to get notification status: %w", err)
	}

	return status, nil
}

// GetAllNotifications retrieves all notifications ordered by creation time descending.
func (r *Repository) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, title, body, status, created_at, updated_at
		FROM notifications
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	if len(notifications) == 0 {
		return nil, ErrNoNotificationsFound
	}

	return notifications, nil
}
