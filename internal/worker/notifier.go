package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/worker/mock.go -package=mocks
type notificationConsumer interface {
	Consume(ctx context.Context, out chan<- queue.Job, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy) error
}

type notificationService interface {
	GetNotificationStatusByID(context.Context, retry.Strategy, uuid.UUID) (string, error)
}

// Notifier is the worker pool that feeds dispatch jobs to the handler.
type Notifier struct {
	consumer notificationConsumer
	handler  messageHandler
	service  notificationService
}

// NewNotifier creates a new Notifier.
//
// Parameters:
//   - c: source of dispatch jobs
//   - h: handler that runs one job
//   - s: status lookup used to skip finished notifications
func NewNotifier(c notificationConsumer, h messageHandler, s notificationService) *Notifier {
	return &Notifier{
		consumer: c,
		handler:  h,
		service:  s,
	}
}

// Run consumes jobs with workerCount goroutines until ctx is done.
// Jobs are handled one at a time per worker. The hand-off channel is
// unbuffered, so every job the consumer let go of is owned by a worker.
func (n *Notifier) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan queue.Job)

	go func() {
		if err := n.consumer.Consume(ctx, msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Info().Int("worker", id).Msg("worker started")

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Info().Int("worker", id).Msg("worker shutting down")
					return
				case job, ok := <-msgChan:
					if !ok {
						zlog.Logger.Info().Int("worker", id).Msg("channel closed, worker shutting down")
						return
					}

					n.process(ctx, job, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Info().Msg("notifier stopped")
}

// process runs one job and settles it on the broker.
//
// A job taken after shutdown began goes back to the queue untouched. A job that
// was started runs to completion, bounded by the handler's job timeout. The
// cached status is only a shortcut; the dispatcher re-checks the database.
func (n *Notifier) process(ctx context.Context, job queue.Job, strategy retry.Strategy) {
	log := zlog.Logger.With().Str("id", job.ID.String()).Logger()

	if ctx.Err() != nil {
		log.Info().Msg("shutting down, returning job to the queue")
		requeue(log, job)
		return
	}

	status, err := n.service.GetNotificationStatusByID(ctx, strategy, job.ID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to get status, dispatching anyway")
	} else if model.IsTerminal(status) {
		log.Info().Str("status", status).Msg("notification already finished, skipping")
		ack(log, job)
		return
	}

	if err := n.handler.HandleMessage(context.WithoutCancel(ctx), job.JobMessage, strategy); err != nil {
		log.Error().Err(err).Msg("job was not settled, returning it to the queue")
		requeue(log, job)
		return
	}

	ack(log, job)
}

func ack(log zerolog.Logger, job queue.Job) {
	if err := job.Ack(); err != nil {
		log.Error().Err(err).Msg("failed to ack job")
	}
}

func requeue(log zerolog.Logger, job queue.Job) {
	if err := job.Nack(true); err != nil {
		log.Error().Err(err).Msg("failed to requeue job")
	}
}
