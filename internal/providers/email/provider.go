// Package email delivers outbound notification mail.
package email

import "context"

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}
