package domain

import "context"

// Message is one outgoing email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers messages, e.g. through Gmail
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
