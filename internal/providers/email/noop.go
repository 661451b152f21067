package email

import (
	"context"

	"go.uber.org/zap"
)

type noopProvider struct {
	log *zap.Logger
}

// NewNoop returns a provider that logs instead of sending. Used when mail
// delivery is disabled.
func NewNoop(log *zap.Logger) Provider {
	return &noopProvider{log: log.Named("email.noop")}
}

func (p *noopProvider) Send(_ context.Context, msg Message) error {
	p.log.Info("mail delivery disabled, dropping message",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
