package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	"go.uber.org/zap"
)

type smtpProvider struct {
	cfg config.EmailConfig
	log *zap.Logger
}

func NewSMTP(cfg config.EmailConfig, log *zap.Logger) Provider {
	return &smtpProvider{cfg: cfg, log: log.Named("email.smtp")}
}

func (p *smtpProvider) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", p.cfg.SMTPFrom)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", p.cfg.SMTPHost, p.cfg.SMTPPort)
	var auth smtp.Auth
	if p.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", p.cfg.SMTPUsername, p.cfg.SMTPPassword, p.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, p.cfg.SMTPFrom, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	p.log.Debug("mail sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
