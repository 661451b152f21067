package migration

import (
	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/seed"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
		if conn.Dialector.Name() == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres targets (local sqlite, mysql) derive the schema
			// from the models.
			err := conn.AutoMigrate(
				&clientdomain.Client{},
				&moduledomain.ModuleSchema{},
				&recorddomain.Record{},
				&apikeydomain.APIKey{},
				&mailtemplatedomain.MailTemplate{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.Bootstrap.EnsureDefaultClient {
			return seed.EnsureDefaultClient(conn, node, cfg, log)
		}
		return nil
	}),
)
