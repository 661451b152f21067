// Package seed bootstraps the default client so the service is usable
// immediately after first start.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureDefaultClient creates the configured default client and its leads
// module when they do not exist yet.
func EnsureDefaultClient(db *gorm.DB, node *snowflake.Node, cfg config.Config, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	name := strings.TrimSpace(cfg.Bootstrap.DefaultClientName)
	if name == "" {
		name = "Main"
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := ensureClientTx(ctx, tx, node, name)
		if err != nil {
			return err
		}
		created, err := ensureLeadsModuleTx(ctx, tx, node, client.ID)
		if err != nil {
			return err
		}
		if created {
			log.Info("default client seeded",
				zap.String("client_id", client.ID.String()),
				zap.String("slug", client.Slug),
			)
		}
		return nil
	})
}

func ensureClientTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*clientdomain.Client, error) {
	clientSlug := slug.Make(name)

	var existing clientdomain.Client
	err := tx.WithContext(ctx).
		Raw(`SELECT id, name, slug, contact_email, is_default, metadata, created_at, updated_at FROM clients WHERE slug = ?`, clientSlug).
		Scan(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing.ID != 0 {
		return &existing, nil
	}

	now := time.Now().UTC()
	client := clientdomain.Client{
		ID:        node.Generate(),
		Name:      name,
		Slug:      clientSlug,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func ensureLeadsModuleTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, clientID snowflake.ID) (bool, error) {
	var existing moduledomain.ModuleSchema
	err := tx.WithContext(ctx).
		Raw(`SELECT id FROM modules WHERE client_id = ? AND slug = ?`, clientID, moduledomain.LeadsSlug).
		Scan(&existing).Error
	if err != nil {
		return false, err
	}
	if existing.ID != 0 {
		return false, nil
	}

	now := time.Now().UTC()
	m := moduledomain.ModuleSchema{
		ID:          node.Generate(),
		ClientID:    clientID,
		Name:        "Leads",
		Description: "Incoming leads",
		Slug:        moduledomain.LeadsSlug,
		Fields:      moduledomain.LeadsFields(),
		IsSystem:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
		return false, err
	}
	return true, nil
}
