// Package notify delivers the daily digest and push summary.
package notify

import (
	"context"
	"errors"
)

var ErrSend = errors.New("send failed")

// Message is a rendered notification. HTML is optional; transports that
// cannot show it use Text.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
