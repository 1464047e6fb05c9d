package notify

import "context"

// Channel is a customer's preferred contact channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// Valid reports whether the channel is one the studio can deliver to.
func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelPhone
}

// Notifier delivers a message to a destination over a channel. Delivery is
// best effort; callers must not treat a send failure as fatal to the
// operation that triggered it.
type Notifier interface {
	Send(ctx context.Context, destination string, channel Channel, message string) error
}
