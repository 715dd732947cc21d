// Package email adapts the SMTP client to the channel transport contract.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/channel-notifier/internal/transport"
)

//go:generate mockgen -source=transport.go -destination=../../mocks/transport/email/mock.go -package=mocks
type smtpClient interface {
	Send(to, subject, msg string) error
}

// Transport sends notifications as plain-text emails.
type Transport struct {
	client   smtpClient
	validate *validator.Validate
	timeout  time.Duration
}

// NewTransport creates an email transport.
func NewTransport(client smtpClient, v *validator.Validate, timeout time.Duration) *Transport {
	return &Transport{client: client, validate: v, timeout: timeout}
}

// Send emails body to endpoint with title as the subject.
func (t *Transport) Send(ctx context.Context, endpoint, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.validate.Var(endpoint, "required,email"); err != nil {
		return fmt.Errorf("%w: email address %q", transport.ErrInvalidEndpoint, endpoint)
	}

	if err := t.client.Send(endpoint, title, body); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	return nil
}

// Timeout is the upper bound for a single Send.
func (t *Transport) Timeout() time.Duration {
	return t.timeout
}
