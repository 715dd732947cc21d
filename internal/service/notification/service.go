package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationPublisher interface {
	Publish(msg queue.JobMessage, strategy retry.Strategy) error
}

type notificationRepository interface {
	CreateNotification(context.Context, model.Notification) (uuid.UUID, error)
	GetNotificationStatusByID(context.Context, uuid.UUID) (string, error)
	Finalize(ctx context.Context, id uuid.UUID, status string, records []model.AttemptRecord) error
	GetAllNotifications(context.Context) ([]model.Notification, error)
}

type attemptLister interface {
	ListFor(ctx context.Context, notificationID uuid.UUID) ([]model.AttemptRecord, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service is the creation and audit boundary of the notifier.
type Service struct {
	repo     notificationRepository
	attempts attemptLister
	queue    notificationPublisher
	cache    cache
}

// NewService creates a new notification Service.
//
// Parameters:
//   - repo: notification storage, the source of truth for statuses
//   - attempts: read side of the attempt log
//   - queue: publisher of dispatch jobs
//   - cache: status cache kept in front of repo
func NewService(
	repo notificationRepository,
	attempts attemptLister,
	queue notificationPublisher,
	cache cache,
) *Service {
	return &Service{repo: repo, attempts: attempts, queue: queue, cache: cache}
}

// CreateNotification stores a pending notification and enqueues its dispatch job.
func (s *Service) CreateNotification(ctx context.Context, strategy retry.Strategy, notification model.Notification) (uuid.UUID, error) {
	notification.Status = model.StatusPending

	id, err := s.repo.CreateNotification(ctx, notification)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create notification: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), notification.Status)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification")
	}

	err = s.queue.Publish(queue.JobMessage{ID: id}, strategy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("enqueue notification %s: %w", id, err)
	}

	return id, nil
}

// GetNotificationStatusByID returns the status of a notification, reading the
// cache first and falling back to the database on a miss.
func (s *Service) GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err == nil {
		return status, nil
	}

	if !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	status, err = s.repo.GetNotificationStatusByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get notification status: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), status)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification")
	}

	return status, nil
}

// GetAllNotifications returns every notification, newest first.
func (s *Service) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	notifications, err := s.repo.GetAllNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all notifications: %w", err)
	}

	return notifications, nil
}

// ListAttempts returns the attempt history of an existing notification.
func (s *Service) ListAttempts(ctx context.Context, strategy retry.Strategy, id uuid.UUID) ([]model.AttemptRecord, error) {
	if _, err := s.GetNotificationStatusByID(ctx, strategy, id); err != nil {
		return nil, err
	}

	records, err := s.attempts.ListFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	return records, nil
}

// Finalize moves a notification to a terminal status together with its
// closing attempt records, then refreshes the cache. The cache is only
// written after the database commit.
func (s *Service) Finalize(
	ctx context.Context,
	strategy retry.Strategy,
	id uuid.UUID,
	status string,
	records []model.AttemptRecord,
) error {
	err := s.repo.Finalize(ctx, id, status, records)
	if err != nil {
		return fmt.Errorf("finalize notification: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), status)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification")
	}

	return nil
}
