package model

import "fmt"

// Channel is a category of delivery mechanism.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelTelegram Channel = "telegram"

	// ChannelNone marks attempt records written before any channel was chosen.
	ChannelNone Channel = "none"
)

// Channels returns the deliverable channels in priority order.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelTelegram}
}

// ParseChannel converts a stored channel name back into a Channel.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelSMS, ChannelTelegram, ChannelNone:
		return c, nil
	default:
		return "", fmt.Errorf("unknown channel %q", s)
	}
}

func (c Channel) String() string {
	return string(c)
}
