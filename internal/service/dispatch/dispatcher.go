// Package dispatch selects a delivery channel for a notification and drives the
// transports until one of them succeeds or every usable channel has failed.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/channel"
	"github.com/aliskhannn/channel-notifier/internal/config"
	"github.com/aliskhannn/channel-notifier/internal/lock"
	"github.com/aliskhannn/channel-notifier/internal/model"
	"github.com/aliskhannn/channel-notifier/internal/repository/notification"
	"github.com/aliskhannn/channel-notifier/internal/repository/profile"
)

// ErrDispatchInProgress is returned when another worker is dispatching the same notification.
var ErrDispatchInProgress = errors.New("dispatch already in progress")

const (
	detailNoProfile       = "no profile"
	detailNoUsableChannel = "no usable channel"
	detailTimeout         = "timeout"
)

//go:generate mockgen -source=dispatcher.go -destination=../../mocks/service/dispatch/mock.go -package=mocks
type notificationRepo interface {
	GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
}

// finalizer writes the terminal status together with the closing attempt
// records, atomically.
type finalizer interface {
	Finalize(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string, records []model.AttemptRecord) error
}

type profileRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserProfile, error)
}

type attemptLog interface {
	Append(ctx context.Context, rec model.AttemptRecord) error
	ListFor(ctx context.Context, notificationID uuid.UUID) ([]model.AttemptRecord, error)
}

type locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

type observer interface {
	ObserveAttempt(channel, outcome string, took time.Duration)
	ObserveDispatch(status string)
}

// timeouter is implemented by transports that carry their own send timeout.
type timeouter interface {
	Timeout() time.Duration
}

// Dispatcher delivers one notification at a time.
type Dispatcher struct {
	notifications notificationRepo
	finalizer     finalizer
	profiles      profileRepo
	attempts      attemptLog
	locker        locker
	registry      *channel.Registry
	metrics       observer
	strategy      retry.Strategy
}

// NewDispatcher creates a Dispatcher.
//
// Parameters:
//   - notifications: read access to notifications, served by the master node
//   - finalizer: writes terminal statuses with their closing attempt records
//   - profiles: contact endpoints of recipients
//   - attempts: the attempt log
//   - locker: per-notification lock shared by all workers
//   - registry: channel priority order and transports
//   - metrics: attempt and dispatch observer
//   - strategy: retry strategy for status writes
func NewDispatcher(
	notifications notificationRepo,
	finalizer finalizer,
	profiles profileRepo,
	attempts attemptLog,
	locker locker,
	registry *channel.Registry,
	metrics observer,
	strategy retry.Strategy,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		finalizer:     finalizer,
		profiles:      profiles,
		attempts:      attempts,
		locker:        locker,
		registry:      registry,
		metrics:       metrics,
		strategy:      strategy,
	}
}

// Dispatch delivers the notification with the given id.
//
// Delivery outcomes are recorded in the attempt log and in the notification
// status, never returned. A non-nil error means the run could not be carried out
// and may be retried.
//
// Failed attempts that still leave a channel to try are appended on their own.
// The closing attempt, success or the last failure, is written in the same
// transaction as the terminal status. A success record found on a pending
// notification means an earlier run sent it but could not finalize; the status
// is repaired without sending again.
func (d *Dispatcher) Dispatch(ctx context.Context, id uuid.UUID) error {
	release, err := d.locker.Acquire(ctx, id.String())
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return ErrDispatchInProgress
		}

		return fmt.Errorf("lock notification %s: %w", id, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			zlog.Logger.Warn().Err(err).Str("id", id.String()).Msg("failed to release dispatch lock")
		}
	}()

	n, err := d.notifications.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("notification not found, skipping")
			return nil
		}

		return fmt.Errorf("load notification %s: %w", id, err)
	}

	if n.Status != model.StatusPending {
		zlog.Logger.Info().Str("id", id.String()).Str("status", n.Status).Msg("notification already handled, skipping")
		return nil
	}

	prior, err := d.attempts.ListFor(ctx, id)
	if err != nil {
		return fmt.Errorf("list attempts of %s: %w", id, err)
	}

	if hasSuccess(prior) {
		zlog.Logger.Warn().Str("id", id.String()).Msg("success already recorded, finalizing without resend")
		return d.finish(ctx, id, model.StatusSent, nil)
	}

	p, err := d.profiles.GetByUserID(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return d.failWithoutChannel(ctx, id, detailNoProfile)
		}

		return fmt.Errorf("load profile %s: %w", n.UserID, err)
	}

	candidates := d.registry.UsableChannels(p)
	if len(candidates) == 0 {
		return d.failWithoutChannel(ctx, id, detailNoUsableChannel)
	}

	var (
		sendErrs *multierror.Error
		closing  model.AttemptRecord
	)
	for i, ch := range candidates {
		tr, ok := d.registry.TransportFor(ch)
		if !ok {
			// NewRegistry rejects incomplete mappings, so this is a wiring bug.
			return fmt.Errorf("%w: %s", channel.ErrTransportNotMapped, ch)
		}

		start := time.Now()
		sendErr := d.send(ctx, tr, channel.Endpoint(p, ch), n.Title, n.Body)
		took := time.Since(start)

		rec := model.AttemptRecord{NotificationID: id, Channel: ch, Outcome: model.OutcomeSuccess}
		if sendErr != nil {
			rec.Outcome = model.OutcomeFailure
			rec.ErrorDetail = sendErr.Error()
			sendErrs = multierror.Append(sendErrs, fmt.Errorf("%s: %w", ch, sendErr))
		}

		d.metrics.ObserveAttempt(ch.String(), rec.Outcome, took)

		if sendErr == nil {
			zlog.Logger.Info().Str("id", id.String()).Str("channel", ch.String()).Msg("notification sent")
			return d.finishSent(ctx, id, rec)
		}

		if i == len(candidates)-1 {
			closing = rec
			break
		}

		if err := d.attempts.Append(ctx, rec); err != nil {
			return fmt.Errorf("record %s attempt for %s: %w", ch, id, err)
		}

		zlog.Logger.Warn().Err(sendErr).Str("id", id.String()).Str("channel", ch.String()).Msg("send failed, trying next channel")
	}

	zlog.Logger.Error().Err(sendErrs.ErrorOrNil()).Str("id", id.String()).Msg("all channels failed")

	return d.finish(ctx, id, model.StatusFailed, []model.AttemptRecord{closing})
}

// failWithoutChannel records a failure that happened before any transport was chosen.
func (d *Dispatcher) failWithoutChannel(ctx context.Context, id uuid.UUID, detail string) error {
	zlog.Logger.Warn().Str("id", id.String()).Msg(detail)

	return d.finish(ctx, id, model.StatusFailed, []model.AttemptRecord{{
		NotificationID: id,
		Channel:        model.ChannelNone,
		Outcome:        model.OutcomeFailure,
		ErrorDetail:    detail,
	}})
}

// finishSent finalizes a delivered notification. When the transaction fails
// the success record is appended alone, so a redelivered job repairs the
// status instead of sending the message twice.
func (d *Dispatcher) finishSent(ctx context.Context, id uuid.UUID, rec model.AttemptRecord) error {
	err := d.finish(ctx, id, model.StatusSent, []model.AttemptRecord{rec})
	if err == nil {
		return nil
	}

	// A commit error can hide a commit that went through.
	if recorded, listErr := d.attempts.ListFor(ctx, id); listErr == nil && hasSuccess(recorded) {
		return err
	}

	if appendErr := d.attempts.Append(ctx, rec); appendErr != nil {
		return multierror.Append(err, fmt.Errorf("record %s success for %s: %w", rec.Channel, id, appendErr))
	}

	return err
}

func (d *Dispatcher) finish(ctx context.Context, id uuid.UUID, status string, records []model.AttemptRecord) error {
	err := d.finalizer.Finalize(ctx, d.strategy, id, status, records)
	if errors.Is(err, notification.ErrNotificationNotPending) {
		zlog.Logger.Warn().Str("id", id.String()).Msg("notification finalized concurrently")
		return nil
	}
	if err != nil {
		return fmt.Errorf("set status=%s for %s: %w", status, id, err)
	}

	d.metrics.ObserveDispatch(status)

	return nil
}

func hasSuccess(records []model.AttemptRecord) bool {
	for _, rec := range records {
		if rec.Outcome == model.OutcomeSuccess {
			return true
		}
	}

	return false
}

// send calls the transport with a bounded timeout. A send that outlives the
// timeout or panics is reported as an error; the call itself is left to finish
// in the background.
func (d *Dispatcher) send(ctx context.Context, tr channel.Transport, endpoint, title, body string) error {
	timeout := config.DefaultSendTimeout
	if t, ok := tr.(timeouter); ok && t.Timeout() > 0 {
		timeout = t.Timeout()
	}

	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()

		done <- tr.Send(sendCtx, endpoint, title, body)
	}()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return errors.New(detailTimeout)
		}
		return err
	case <-sendCtx.Done():
		return errors.New(detailTimeout)
	}
}
