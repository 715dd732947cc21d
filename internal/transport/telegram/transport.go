// Package telegram adapts the Telegram bot client to the channel transport contract.
package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aliskhannn/channel-notifier/internal/transport"
)

//go:generate mockgen -source=transport.go -destination=../../mocks/transport/telegram/mock.go -package=mocks
type botClient interface {
	Send(chatID string, msg string) error
}

// Transport sends notifications as chat-bot messages.
type Transport struct {
	client  botClient
	limiter *rate.Limiter
	timeout time.Duration
}

// NewTransport creates a Telegram transport sending at most perSecond messages per second.
// A non-positive perSecond disables the limit.
func NewTransport(client botClient, perSecond float64, timeout time.Duration) *Transport {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = int(perSecond)
		if burst < 1 {
			burst = 1
		}
	}

	return &Transport{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
	}
}

// Send posts the notification to the chat in endpoint.
func (t *Transport) Send(ctx context.Context, endpoint, title, body string) error {
	chatID := strings.TrimSpace(endpoint)
	if chatID == "" {
		return fmt.Errorf("%w: chat id is empty", transport.ErrInvalidEndpoint)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if err := t.client.Send(chatID, formatMessage(title, body)); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	return nil
}

// Timeout is the upper bound for a single Send.
func (t *Transport) Timeout() time.Duration {
	return t.timeout
}

// formatMessage renders the notification for HTML parse mode.
func formatMessage(title, body string) string {
	if title == "" {
		return html.EscapeString(body)
	}

	return "<b>" + html.EscapeString(title) + "</b>\n\n" + html.EscapeString(body)
}
