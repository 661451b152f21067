package repository

import (
	"context"

	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() mailtemplatedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, template *mailtemplatedomain.MailTemplate) error {
	return db.WithContext(ctx).Create(template).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, template *mailtemplatedomain.MailTemplate) error {
	return db.WithContext(ctx).Exec(
		`UPDATE mail_templates SET name = ?, subject = ?, body = ?, updated_at = ? WHERE client_id = ? AND id = ?`,
		template.Name,
		template.Subject,
		template.Body,
		template.UpdatedAt,
		template.ClientID,
		template.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM mail_templates WHERE client_id = ? AND id = ?`,
		clientID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*mailtemplatedomain.MailTemplate, error) {
	var template mailtemplatedomain.MailTemplate
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, name, subject, body, created_at, updated_at
		 FROM mail_templates WHERE client_id = ? AND id = ?`,
		clientID, id,
	).Scan(&template).Error
	if err != nil {
		return nil, err
	}
	if template.ID == 0 {
		return nil, nil
	}
	return &template, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]mailtemplatedomain.MailTemplate, error) {
	var templates []mailtemplatedomain.MailTemplate
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, name, subject, body, created_at, updated_at
		 FROM mail_templates WHERE client_id = ? ORDER BY created_at ASC`,
		clientID,
	).Scan(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}
