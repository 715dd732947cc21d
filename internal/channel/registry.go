// Package channel holds the static, ordered set of delivery channels and the
// transport that serves each of them.
package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/channel-notifier/internal/model"
)

// ErrTransportNotMapped is returned by NewRegistry when a channel has no transport.
var ErrTransportNotMapped = errors.New("channel has no transport")

// Transport delivers a message over one external mechanism.
//
// A nil error means the provider accepted the message; any failure, including
// invalid endpoints and provider rejections, is reported as an error whose text
// becomes the attempt's error detail.
//
//go:generate mockgen -source=registry.go -destination=../mocks/channel/mock.go -package=mocks
type Transport interface {
	Send(ctx context.Context, endpoint, title, body string) error
}

// Registry maps every channel to its transport and knows which channels a profile can use.
type Registry struct {
	order      []model.Channel
	transports map[model.Channel]Transport
}

// NewRegistry builds a registry over model.Channels().
//
// Every channel must have a transport; a missing one is a configuration error.
func NewRegistry(transports map[model.Channel]Transport) (*Registry, error) {
	order := model.Channels()
	mapped := make(map[model.Channel]Transport, len(order))

	for _, ch := range order {
		t, ok := transports[ch]
		if !ok || t == nil {
			return nil, fmt.Errorf("%w: %s", ErrTransportNotMapped, ch)
		}

		mapped[ch] = t
	}

	return &Registry{order: order, transports: mapped}, nil
}

// UsableChannels returns the channels the profile has an endpoint for, in priority order.
func (r *Registry) UsableChannels(profile model.UserProfile) []model.Channel {
	usable := make([]model.Channel, 0, len(r.order))

	for _, ch := range r.order {
		if Endpoint(profile, ch) != "" {
			usable = append(usable, ch)
		}
	}

	return usable
}

// TransportFor returns the transport serving ch.
func (r *Registry) TransportFor(ch model.Channel) (Transport, bool) {
	t, ok := r.transports[ch]
	return t, ok
}

// Endpoint returns the profile's contact field for ch, trimmed.
func Endpoint(profile model.UserProfile, ch model.Channel) string {
	switch ch {
	case model.ChannelEmail:
		return strings.TrimSpace(profile.Email)
	case model.ChannelSMS:
		return strings.TrimSpace(profile.Phone)
	case model.ChannelTelegram:
		return strings.TrimSpace(profile.TelegramChatID)
	default:
		return ""
	}
}
