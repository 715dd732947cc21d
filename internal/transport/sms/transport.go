// Package sms adapts the SMS gateway client to the channel transport contract.
package sms

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/channel-notifier/internal/transport"
)

// minPhoneDigits is the shortest number, country code included, that is accepted.
const minPhoneDigits = 10

var nonDigits = regexp.MustCompile(`\D`)

//go:generate mockgen -source=transport.go -destination=../../mocks/transport/sms/mock.go -package=mocks
type gatewayClient interface {
	Send(phone, title, body string) error
}

// Transport sends notifications as text messages.
type Transport struct {
	client   gatewayClient
	validate *validator.Validate
	timeout  time.Duration
}

// NewTransport creates an SMS transport.
func NewTransport(client gatewayClient, v *validator.Validate, timeout time.Duration) *Transport {
	return &Transport{client: client, validate: v, timeout: timeout}
}

// Send texts the notification to the phone number in endpoint.
func (t *Transport) Send(ctx context.Context, endpoint, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	phone, err := t.normalizePhone(endpoint)
	if err != nil {
		return err
	}

	if err := t.client.Send(phone, title, body); err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}

	return nil
}

// Timeout is the upper bound for a single Send.
func (t *Transport) Timeout() time.Duration {
	return t.timeout
}

// normalizePhone strips everything but digits and checks the result is a plausible E.164 number.
func (t *Transport) normalizePhone(phone string) (string, error) {
	digits := nonDigits.ReplaceAllString(phone, "")

	if len(digits) < minPhoneDigits {
		return "", fmt.Errorf("%w: phone number %q", transport.ErrInvalidEndpoint, phone)
	}

	if err := t.validate.Var("+"+digits, "e164"); err != nil {
		return "", fmt.Errorf("%w: phone number %q", transport.ErrInvalidEndpoint, phone)
	}

	return digits, nil
}
