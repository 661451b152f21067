package email

import (
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provide(cfg config.Config, log *zap.Logger) Provider {
	if !cfg.Email.Enabled || cfg.Email.SMTPHost == "" {
		return NewNoop(log)
	}
	return NewSMTP(cfg.Email, log)
}

var Module = fx.Module("providers.email",
	fx.Provide(provide),
)
