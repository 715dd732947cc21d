package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/channel-notifier/internal/config"
	mocks "github.com/aliskhannn/channel-notifier/internal/mocks/api/handlers/notification"
	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/repository/notification"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocknotifService, *config.Config) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := mocks.NewMocknotifService(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{Attempts: 3}}
	handler := NewHandler(mockService, validator.New(), cfg)

	return handler, mockService, cfg
}

func newContext(method, target string, body []byte, id string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))

	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}

	return c, w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var env struct {
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Result, v))
}

func TestHandler_Create_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)

	userID := uuid.New()
	reqBody := CreateRequest{UserID: userID.String(), Title: "Hi", Body: "test"}
	bodyBytes, _ := json.Marshal(reqBody)
	c, w := newContext(http.MethodPost, "/api/notify", bodyBytes, "")

	notif := model.Notification{
		UserID: userID,
		Title:  "Hi",
		Body:   "test",
		Status: model.StatusPending,
	}
	id := uuid.New()

	mockService.EXPECT().
		CreateNotification(gomock.Any(), cfg.Retry, notif).
		Return(id, nil)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got uuid.UUID
	decodeResult(t, w, &got)
	assert.Equal(t, id, got)
}

func TestHandler_Create_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"user_id":`},
		{name: "missing title", body: `{"user_id":"` + uuid.NewString() + `","body":"test"}`},
		{name: "invalid user id", body: `{"user_id":"42","title":"Hi","body":"test"}`},
		{name: "title too long", body: `{"user_id":"` + uuid.NewString() + `","title":"` + strings.Repeat("a", 256) + `","body":"test"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, _ := setupHandler(t)
			c, w := newContext(http.MethodPost, "/api/notify", []byte(tt.body), "")

			handler.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_Create_ServiceError(t *testing.T) {
	handler, mockService, _ := setupHandler(t)

	bodyBytes, _ := json.Marshal(CreateRequest{UserID: uuid.NewString(), Title: "Hi", Body: "test"})
	c, w := newContext(http.MethodPost, "/api/notify", bodyBytes, "")

	mockService.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(uuid.Nil, errors.New("enqueue failed"))

	handler.Create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_GetStatus_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()
	c, w := newContext(http.MethodGet, "/api/notify/"+id.String(), nil, id.String())

	mockService.EXPECT().
		GetNotificationStatusByID(gomock.Any(), cfg.Retry, id).
		Return("sent", nil)

	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got StatusResponse
	decodeResult(t, w, &got)
	assert.Equal(t, StatusResponse{ID: id, Status: "sent"}, got)
}

func TestHandler_GetStatus_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		err      error
		wantCode int
	}{
		{name: "invalid id", id: "abc", wantCode: http.StatusBadRequest},
		{name: "nil id", id: uuid.Nil.String(), wantCode: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), err: notification.ErrNotificationNotFound, wantCode: http.StatusNotFound},
		{name: "store error", id: uuid.NewString(), err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService, _ := setupHandler(t)
			c, w := newContext(http.MethodGet, "/api/notify/"+tt.id, nil, tt.id)

			if tt.err != nil {
				mockService.EXPECT().
					GetNotificationStatusByID(gomock.Any(), gomock.Any(), uuid.MustParse(tt.id)).
					Return("", tt.err)
			}

			handler.GetStatus(c)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandler_GetAll_Success(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notify", nil, "")

	mockService.EXPECT().
		GetAllNotifications(gomock.Any()).
		Return([]model.Notification{{ID: uuid.New(), Title: "Hi"}}, nil)

	handler.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Notification
	decodeResult(t, w, &got)
	assert.Len(t, got, 1)
}

func TestHandler_GetAll_Empty(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notify", nil, "")

	mockService.EXPECT().
		GetAllNotifications(gomock.Any()).
		Return(nil, notification.ErrNoNotificationsFound)

	handler.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetAttempts_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()
	c, w := newContext(http.MethodGet, "/api/notify/"+id.String()+"/attempts", nil, id.String())

	records := []model.AttemptRecord{
		{ID: 1, NotificationID: id, Channel: model.ChannelEmail, Outcome: model.OutcomeFailure, ErrorDetail: "timeout"},
		{ID: 2, NotificationID: id, Channel: model.ChannelSMS, Outcome: model.OutcomeSuccess},
	}

	mockService.EXPECT().
		ListAttempts(gomock.Any(), cfg.Retry, id).
		Return(records, nil)

	handler.GetAttempts(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.AttemptRecord
	decodeResult(t, w, &got)
	require.Len(t, got, 2)
	assert.Equal(t, model.ChannelEmail, got[0].Channel)
	assert.Equal(t, "timeout", got[0].ErrorDetail)
	assert.Equal(t, model.OutcomeSuccess, got[1].Outcome)
}

func TestHandler_GetAttempts_NotFound(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	id := uuid.New()
	c, w := newContext(http.MethodGet, "/api/notify/"+id.String()+"/attempts", nil, id.String())

	mockService.EXPECT().
		ListAttempts(gomock.Any(), gomock.Any(), id).
		Return(nil, notification.ErrNotificationNotFound)

	handler.GetAttempts(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
