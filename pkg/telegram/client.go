// Package telegram provides a simple client for sending notifications via Telegram.
//
// It allows creating a client with a bot token and sending messages to specified chat IDs.
// Messages are sent with HTML parse mode.
package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// DefaultAPIURL is the public Telegram Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// Client represents a Telegram client used to send notifications.
type Client struct {
	bot *tele.Bot
}

// chat addresses a chat by its raw id or @username.
type chat string

// Recipient implements tele.Recipient.
func (c chat) Recipient() string {
	return string(c)
}

// NewClient creates a new Telegram Client instance with the given bot token.
//
// The bot is created offline: no request is made until the first Send.
func NewClient(token, apiURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}

	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:     strings.TrimSuffix(apiURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Client{bot: bot}, nil
}

// Send sends an HTML formatted message to the specified Telegram chat ID.
//
// Errors reported by the Bot API carry the API's description.
func (c *Client) Send(chatID string, msg string) error {
	if _, err := c.bot.Send(chat(chatID), msg, tele.ModeHTML); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
