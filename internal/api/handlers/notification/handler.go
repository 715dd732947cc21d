package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/api/respond"
	"github.com/aliskhannn/channel-notifier/internal/config"
	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/repository/notification"
)

// notifService is the part of the notification service the HTTP layer uses.
//
// Dispatch is not reachable from here: creation only enqueues a job, and the
// audit endpoints read what the workers recorded.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notifService interface {
	CreateNotification(context.Context, retry.Strategy, model.Notification) (uuid.UUID, error)
	GetNotificationStatusByID(context.Context, retry.Strategy, uuid.UUID) (string, error)
	GetAllNotifications(context.Context) ([]model.Notification, error)
	ListAttempts(context.Context, retry.Strategy, uuid.UUID) ([]model.AttemptRecord, error)
}

// Handler handles HTTP requests related to notifications.
//
// It provides endpoints for creating notifications, checking their status,
// listing all notifications and reading the attempt log of one of them.
type Handler struct {
	service   notifService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
//
// Parameters:
//   - s: implementation of notifService
//   - v: validator instance for request validation
//   - cfg: configuration instance, its retry strategy is passed to the service
func NewHandler(
	s notifService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// CreateRequest represents the JSON body expected in a notification creation request.
//
// The channel is not part of the request; it is chosen at dispatch time from
// the recipient's profile.
type CreateRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`  // recipient whose profile holds the contact endpoints
	Title  string `json:"title" validate:"required,max=255"` // subject line, also used as the message heading
	Body   string `json:"body" validate:"required"`          // message text
}

// StatusResponse is returned by GET /api/notify/:id.
type StatusResponse struct {
	ID     uuid.UUID `json:"id"`     // notification ID
	Status string    `json:"status"` // pending, sent or failed
}

// Create handles HTTP POST requests to create a new notification.
//
// It validates the request body, stores the notification as pending, queues
// it for dispatch and returns the created notification ID or an error.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	notif := model.Notification{
		UserID: uuid.MustParse(req.UserID),
		Title:  req.Title,
		Body:   req.Body,
		Status: model.StatusPending,
	}

	id, err := h.service.CreateNotification(c.Request.Context(), h.cfg.Retry, notif)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// GetStatus handles HTTP GET requests to retrieve the status of a notification.
//
// It expects the notification ID as a URL parameter and returns its status.
func (h *Handler) GetStatus(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := h.service.GetNotificationStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		failLookup(c, id, err, "failed to get notification status")
		return
	}

	respond.OK(c.Writer, StatusResponse{ID: id, Status: status})
}

// GetAll lists every notification, newest first.
func (h *Handler) GetAll(c *ginext.Context) {
	notifications, err := h.service.GetAllNotifications(c.Request.Context())
	if err != nil {
		if errors.Is(err, notification.ErrNoNotificationsFound) {
			respond.OK(c.Writer, []model.Notification{})
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// GetAttempts handles HTTP GET requests for the attempt log of a notification.
//
// Records are returned in the order they were made; an empty list means the
// notification has not been dispatched yet. Unknown IDs get 404.
func (h *Handler) GetAttempts(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	records, err := h.service.ListAttempts(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		failLookup(c, id, err, "failed to list attempts")
		return
	}

	respond.OK(c.Writer, records)
}

// parseID reads the :id URL parameter, writing 400 when it is not a UUID.
func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}

// failLookup maps a lookup error to 404 or 500.
func failLookup(c *ginext.Context, id uuid.UUID, err error, msg string) {
	if errors.Is(err, notification.ErrNotificationNotFound) {
		zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("notification not found")
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
		return
	}

	zlog.Logger.Error().Err(err).Str("id", id.String()).Msg(msg)
	respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
}
