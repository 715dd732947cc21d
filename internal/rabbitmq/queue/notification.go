package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/config"
)

// JobMessage asks a worker to dispatch one notification.
type JobMessage struct {
	ID           uuid.UUID `json:"id"`
	Redeliveries int       `json:"redeliveries"`
}

// Job is a decoded delivery. The broker keeps it until Ack or Nack is called;
// a job left unacknowledged when the channel closes is redelivered.
type Job struct {
	JobMessage

	ack  func() error
	nack func(requeue bool) error
}

// NewJob wraps msg with its acknowledgement callbacks.
func NewJob(msg JobMessage, ack func() error, nack func(requeue bool) error) Job {
	return Job{JobMessage: msg, ack: ack, nack: nack}
}

// Ack removes the job from the queue.
func (j Job) Ack() error {
	return j.ack()
}

// Nack returns the job to the queue when requeue is set, otherwise the broker
// dead-letters it.
func (j Job) Nack(requeue bool) error {
	return j.nack(requeue)
}

// NotificationQueue publishes and consumes dispatch jobs.
//
// Jobs that fail with an infrastructure error are parked in the retry queue,
// which dead-letters them back to the main queue after RetryDelay. Jobs that
// ran out of redeliveries go to the DLQ. Consumed jobs are acknowledged by the
// worker only after they were handled.
type NotificationQueue struct {
	Publisher *rabbitmq.Publisher

	ch              *rabbitmq.Channel
	queue           string
	routingKey      string
	retryRoutingKey string
	dlqRoutingKey   string
}

// NewNotificationQueue declares the exchange and queues described by cfg on ch.
func NewNotificationQueue(ch *rabbitmq.Channel, cfg config.RabbitMQ) (*NotificationQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	dlq, err := qm.DeclareQueue(cfg.DLQ, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.Queue,
		"x-message-ttl":             int32(cfg.RetryDelay.Milliseconds()),
	}

	retryQ, err := qm.DeclareQueue(cfg.RetryQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.DLQ,
	}

	mainQ, err := qm.DeclareQueue(cfg.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	q := &NotificationQueue{
		ch:              ch,
		queue:           mainQ.Name,
		routingKey:      cfg.RoutingKey,
		retryRoutingKey: cfg.RoutingKey + ".retry",
		dlqRoutingKey:   cfg.RoutingKey + ".dlq",
	}

	bindings := []struct {
		queue, key string
	}{
		{mainQ.Name, q.routingKey},
		{retryQ.Name, q.retryRoutingKey},
		{dlq.Name, q.dlqRoutingKey},
	}
	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.key, exchange.Name(), false, nil); err != nil {
			return nil, fmt.Errorf("failed to bind the exchange to %s: %w", b.queue, err)
		}
	}

	q.Publisher = rabbitmq.NewPublisher(ch, exchange.Name())

	return q, nil
}

// Publish enqueues a job on the main queue.
func (q *NotificationQueue) Publish(msg JobMessage, strategy retry.Strategy) error {
	return q.publish(msg, q.routingKey, strategy)
}

// PublishRetry parks a job in the retry queue.
func (q *NotificationQueue) PublishRetry(msg JobMessage, strategy retry.Strategy) error {
	return q.publish(msg, q.retryRoutingKey, strategy)
}

// PublishDLQ moves a job to the dead letter queue.
func (q *NotificationQueue) PublishDLQ(msg JobMessage, strategy retry.Strategy) error {
	return q.publish(msg, q.dlqRoutingKey, strategy)
}

func (q *NotificationQueue) publish(msg JobMessage, key string, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, key, "application/json", strategy)
}

// Consume decodes jobs from the main queue into out until ctx is done.
// Deliveries use manual acknowledgement; see Job.
func (q *NotificationQueue) Consume(ctx context.Context, out chan<- Job, strategy retry.Strategy) error {
	var deliveries <-chan amqp091.Delivery

	err := retry.Do(func() error {
		var err error
		deliveries, err = q.ch.Consume(q.queue, "", false, false, false, false, nil)
		return err
	}, strategy)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", q.queue, err)
	}
	if deliveries == nil {
		return errors.New("consumer was not started")
	}

	forward(ctx, deliveries, out)

	return nil
}

// forward decodes deliveries into jobs. Undecodable deliveries are rejected
// without requeue, which dead-letters them to the DLQ. A delivery that could
// not be handed over before ctx was done goes back to the queue.
func forward(ctx context.Context, in <-chan amqp091.Delivery, out chan<- Job) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-in:
			if !ok {
				return
			}

			var msg JobMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal message")
				reject(d)
				continue
			}

			if msg.ID == uuid.Nil {
				zlog.Logger.Warn().Bytes("body", d.Body).Msg("job without notification id, rejecting")
				reject(d)
				continue
			}

			job := NewJob(msg,
				func() error { return d.Ack(false) },
				func(requeue bool) error { return d.Nack(false, requeue) },
			)

			select {
			case out <- job:
			case <-ctx.Done():
				if err := d.Nack(false, true); err != nil {
					zlog.Logger.Error().Err(err).Str("id", msg.ID.String()).Msg("failed to requeue job")
				}
				return
			}
		}
	}
}

func reject(d amqp091.Delivery) {
	if err := d.Nack(false, false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to reject message")
	}
}
