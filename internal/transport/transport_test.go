package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabled_Send(t *testing.T) {
	err := NewDisabled("sms").Send(context.Background(), "+79991234567", "Hi", "test")

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.EqualError(t, err, "sms transport: not configured")
}
