package email

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_newMessage(t *testing.T) {
	c := NewClient("smtp.example.com", 587, "user", "pass", "notifier@example.com", time.Second)

	var buf bytes.Buffer
	_, err := c.newMessage("a@b.com", "Hi", "test").WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: notifier@example.com")
	assert.Contains(t, raw, "To: a@b.com")
	assert.Contains(t, raw, "Subject: Hi")
	assert.Contains(t, raw, "test")
}

func TestNewClient_Timeout(t *testing.T) {
	c := NewClient("smtp.example.com", 587, "user", "pass", "from@example.com", 3*time.Second)
	assert.Equal(t, 3*time.Second, c.dialer.Timeout)

	c = NewClient("smtp.example.com", 587, "user", "pass", "from@example.com", 0)
	assert.NotZero(t, c.dialer.Timeout)
}
