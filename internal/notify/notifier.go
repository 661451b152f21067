// Package notify sends the configured mail template when a record arrives
// through the public API.
package notify

import (
	"context"

	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Templates  mailtemplatedomain.Service
	ClientRepo clientdomain.Repository
	Email      email.Provider
}

type Notifier struct {
	db         *gorm.DB
	log        *zap.Logger
	templates  mailtemplatedomain.Service
	clientRepo clientdomain.Repository
	email      email.Provider
}

func New(p Params) *Notifier {
	return &Notifier{
		db:         p.DB,
		log:        p.Log.Named("notify"),
		templates:  p.Templates,
		clientRepo: p.ClientRepo,
		email:      p.Email,
	}
}

// RecordCreated delivers the module's mail template to the client contact.
// Delivery is best effort; failures are logged, never returned.
func (n *Notifier) RecordCreated(ctx context.Context, m *moduledomain.ModuleSchema, data map[string]any) {
	if m.MailTemplateID == nil {
		return
	}

	log := n.log.With(
		zap.String("client_id", m.ClientID.String()),
		zap.String("module_slug", m.Slug),
	)

	client, err := n.clientRepo.FindByID(ctx, n.db, m.ClientID)
	if err != nil || client == nil {
		log.Warn("load client for notification", zap.Error(err))
		return
	}
	if client.ContactEmail == "" {
		log.Debug("client has no contact email, skipping notification")
		return
	}

	subject, body, err := n.templates.Render(ctx, *m.MailTemplateID, m.ClientID, data)
	if err != nil {
		log.Warn("render notification template", zap.Error(err))
		return
	}

	msg := email.Message{
		To:      []string{client.ContactEmail},
		Subject: subject,
		HTML:    body,
	}
	if err := n.email.Send(ctx, msg); err != nil {
		log.Warn("send notification", zap.Error(err))
		return
	}

	log.Info("record notification sent", zap.String("to", client.ContactEmail))
}

var Module = fx.Module("notify",
	fx.Provide(New),
)
