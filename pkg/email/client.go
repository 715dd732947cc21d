// Package email sends plain-text messages through an SMTP relay.
package email

import (
	"time"

	"gopkg.in/mail.v2"
)

// Client sends emails via a single SMTP relay.
type Client struct {
	dialer *mail.Dialer
	from   string
}

// NewClient creates a new SMTP client. A zero timeout keeps the dialer default.
func NewClient(smtpHost string, smtpPort int, username, password, from string, timeout time.Duration) *Client {
	dialer := mail.NewDialer(smtpHost, smtpPort, username, password)
	if timeout > 0 {
		dialer.Timeout = timeout
	}

	return &Client{
		dialer: dialer,
		from:   from,
	}
}

// Send delivers msg to the given address with subject as the Subject header.
func (c *Client) Send(to, subject, msg string) error {
	return c.dialer.DialAndSend(c.newMessage(to, subject, msg))
}

func (c *Client) newMessage(to, subject, msg string) *mail.Message {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	message.SetBody("text/plain", msg)

	return message
}
