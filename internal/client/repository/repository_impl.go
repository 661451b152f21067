package repository

import (
	"context"

	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() clientdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *clientdomain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *clientdomain.Client) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clients SET name = ?, contact_email = ?, updated_at = ? WHERE id = ?`,
		client.Name,
		client.ContactEmail,
		client.UpdatedAt,
		client.ID,
	).Error
}

// Delete removes the client and everything scoped to it.
func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statements := []string{
			`DELETE FROM records WHERE client_id = ?`,
			`DELETE FROM api_keys WHERE client_id = ?`,
			`DELETE FROM mail_templates WHERE client_id = ?`,
			`DELETE FROM modules WHERE client_id = ?`,
			`DELETE FROM clients WHERE id = ?`,
		}
		for _, stmt := range statements {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, contact_email, is_default, metadata, created_at, updated_at
		 FROM clients WHERE id = ?`,
		id,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, contact_email, is_default, metadata, created_at, updated_at
		 FROM clients WHERE slug = ?`,
		slug,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]clientdomain.Client, error) {
	var clients []clientdomain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, contact_email, is_default, metadata, created_at, updated_at
		 FROM clients ORDER BY created_at ASC`,
	).Scan(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
