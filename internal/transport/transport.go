// Package transport holds what the per-channel transports share.
package transport

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidEndpoint is returned when a contact endpoint cannot be delivered to.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrNotConfigured is returned by a Disabled transport.
	ErrNotConfigured = errors.New("not configured")
)

// Disabled stands in for a channel whose provider credentials are missing.
// Every send fails, so dispatch falls through to the next usable channel.
type Disabled struct {
	name string
}

// NewDisabled creates a transport that rejects every send for the named channel.
func NewDisabled(name string) Disabled {
	return Disabled{name: name}
}

// Send always fails with ErrNotConfigured.
func (d Disabled) Send(context.Context, string, string, string) error {
	return fmt.Errorf("%s transport: %w", d.name, ErrNotConfigured)
}
