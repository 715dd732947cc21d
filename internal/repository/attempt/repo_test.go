package attempt

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/channel-notifier/internal/model"
)

var attemptColumns = []string{"id", "notification_id", "channel", "outcome", "error_detail", "created_at"}

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func TestAppend(t *testing.T) {
	repo, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notification_attempts`)).
		WithArgs(id, "email", model.OutcomeFailure, "smtp: timeout").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notification_attempts`)).
		WithArgs(id, "sms", model.OutcomeSuccess, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))

	require.NoError(t, repo.Append(context.Background(), model.AttemptRecord{
		NotificationID: id,
		Channel:        model.ChannelEmail,
		Outcome:        model.OutcomeFailure,
		ErrorDetail:    "smtp: timeout",
	}))
	require.NoError(t, repo.Append(context.Background(), model.AttemptRecord{
		NotificationID: id,
		Channel:        model.ChannelSMS,
		Outcome:        model.OutcomeSuccess,
	}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFor(t *testing.T) {
	repo, mock := setupMockDB(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notification_attempts`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(attemptColumns).
			AddRow(int64(1), id.String(), "email", model.OutcomeFailure, "smtp: timeout", now).
			AddRow(int64(2), id.String(), "sms", model.OutcomeSuccess, nil, now))

	records, err := repo.ListFor(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.ChannelEmail, records[0].Channel)
	assert.Equal(t, model.OutcomeFailure, records[0].Outcome)
	assert.Equal(t, "smtp: timeout", records[0].ErrorDetail)

	assert.Equal(t, model.ChannelSMS, records[1].Channel)
	assert.Equal(t, model.OutcomeSuccess, records[1].Outcome)
	assert.Empty(t, records[1].ErrorDetail)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFor_Empty(t *testing.T) {
	repo, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notification_attempts`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(attemptColumns))

	records, err := repo.ListFor(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListFor_UnknownChannel(t *testing.T) {
	repo, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notification_attempts`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(attemptColumns).
			AddRow(int64(1), id.String(), "pigeon", model.OutcomeFailure, nil, time.Now()))

	_, err := repo.ListFor(context.Background(), id)
	assert.Error(t, err)
}
