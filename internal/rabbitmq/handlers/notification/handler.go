package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/channel-notifier/internal/service/dispatch"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/notification/mock.go -package=mocks
type dispatcher interface {
	Dispatch(ctx context.Context, id uuid.UUID) error
}

type requeuer interface {
	PublishRetry(msg queue.JobMessage, strategy retry.Strategy) error
	PublishDLQ(msg queue.JobMessage, strategy retry.Strategy) error
}

// Handler runs dispatch jobs taken from the queue.
type Handler struct {
	dispatcher      dispatcher
	requeuer        requeuer
	jobTimeout      time.Duration
	maxRedeliveries int
}

// NewHandler creates a new Handler instance.
//
// Parameters:
//   - d: the dispatcher that delivers a notification
//   - r: publisher of the retry queue and the DLQ
//   - jobTimeout: upper bound for a single dispatch run
//   - maxRedeliveries: retry-queue round trips before a job goes to the DLQ
func NewHandler(d dispatcher, r requeuer, jobTimeout time.Duration, maxRedeliveries int) *Handler {
	return &Handler{
		dispatcher:      d,
		requeuer:        r,
		jobTimeout:      jobTimeout,
		maxRedeliveries: maxRedeliveries,
	}
}

// HandleMessage dispatches the job's notification. Jobs that hit an
// infrastructure error go back through the retry queue until maxRedeliveries
// is reached, then to the DLQ.
//
// A nil result means the job was settled and can be acknowledged. An error
// means the job could not be handed on to the retry queue or the DLQ and must
// stay on the broker.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy) error {
	log := zlog.Logger.With().Str("id", msg.ID.String()).Int("redeliveries", msg.Redeliveries).Logger()
	log.Info().Msg("handling dispatch job")

	jobCtx, cancel := context.WithTimeout(ctx, h.jobTimeout)
	defer cancel()

	err := h.dispatcher.Dispatch(jobCtx, msg.ID)
	if err == nil {
		return nil
	}

	if errors.Is(err, dispatch.ErrDispatchInProgress) {
		log.Info().Msg("notification is being dispatched by another worker, dropping job")
		return nil
	}

	next := queue.JobMessage{ID: msg.ID, Redeliveries: msg.Redeliveries + 1}

	if next.Redeliveries > h.maxRedeliveries {
		log.Error().Err(err).Msg("dispatch failed, moving to DLQ")
		if pubErr := h.requeuer.PublishDLQ(next, strategy); pubErr != nil {
			return fmt.Errorf("publish %s to DLQ: %w", msg.ID, pubErr)
		}
		return nil
	}

	log.Warn().Err(err).Msg("dispatch failed, scheduling retry")
	if pubErr := h.requeuer.PublishRetry(next, strategy); pubErr != nil {
		return fmt.Errorf("publish %s to retry queue: %w", msg.ID, pubErr)
	}

	return nil
}
