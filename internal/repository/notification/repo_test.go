package notification

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/channel-notifier/internal/model"
)

var notificationColumns = []string{"id", "user_id", "title", "body", "status", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestCreateNotification(t *testing.T) {
	repo, mock := setupMockDB(t)

	notificationID := uuid.New()
	n := model.Notification{
		UserID: uuid.New(),
		Title:  "Hi",
		Body:   "test",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications`)).
		WithArgs(n.UserID, n.Title, n.Body, model.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(notificationID.String()))

	id, err := repo.CreateNotification(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, notificationID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id, userID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(id.String(), userID.String(), "Hi", "test", model.StatusPending, now, now))

	n, err := repo.GetNotificationByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, id, n.ID)
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, "Hi", n.Title)
	assert.Equal(t, "test", n.Body)
	assert.Equal(t, model.StatusPending, n.Status)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetNotificationByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	records := []model.AttemptRecord{
		{NotificationID: id, Channel: model.ChannelEmail, Outcome: model.OutcomeSuccess},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $2 AND status = 'pending'`)).
		WithArgs(model.StatusSent, id).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notification_attempts`)).
		WithArgs(id, "email", model.OutcomeSuccess, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Finalize(context.Background(), id, model.StatusSent, records)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_NotPendingWritesNothing(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	records := []model.AttemptRecord{
		{NotificationID: id, Channel: model.ChannelEmail, Outcome: model.OutcomeSuccess},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $2 AND status = 'pending'`)).
		WithArgs(model.StatusSent, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Finalize(context.Background(), id, model.StatusSent, records)
	assert.ErrorIs(t, err, ErrNotificationNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_RollsBackOnAttemptError(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	records := []model.AttemptRecord{
		{NotificationID: id, Channel: model.ChannelSMS, Outcome: model.OutcomeFailure, ErrorDetail: "boom"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $2 AND status = 'pending'`)).
		WithArgs(model.StatusFailed, id).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notification_attempts`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Finalize(context.Background(), id, model.StatusFailed, records)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotificationNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_RowsAffectedError(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $2 AND status = 'pending'`)).
		WithArgs(model.StatusFailed, id).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not report rows")))
	mock.ExpectRollback()

	err := repo.Finalize(context.Background(), id, model.StatusFailed, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotificationNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationStatusByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusPending))

	gotStatus, err := repo.GetNotificationStatusByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, gotStatus)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	gotStatus, err = repo.GetNotificationStatusByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.Equal(t, "", gotStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllNotifications(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(notificationColumns).
		AddRow(uuid.NewString(), uuid.NewString(), "t1", "b1", model.StatusPending, now, now).
		AddRow(uuid.NewString(), uuid.NewString(), "t2", "b2", model.StatusSent, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).WillReturnRows(rows)

	list, err := repo.GetAllNotifications(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	_, err = repo.GetAllNotifications(context.Background())
	assert.ErrorIs(t, err, ErrNoNotificationsFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
