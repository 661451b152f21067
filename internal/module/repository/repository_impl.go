package repository

import (
	"context"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() moduledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *moduledomain.ModuleSchema) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *moduledomain.ModuleSchema) error {
	return db.WithContext(ctx).Exec(
		`UPDATE modules
		 SET name = ?, description = ?, fields = ?, mail_template_id = ?, updated_at = ?
		 WHERE client_id = ? AND id = ?`,
		m.Name,
		m.Description,
		m.Fields,
		m.MailTemplateID,
		m.UpdatedAt,
		m.ClientID,
		m.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error {
	// Records cascade with their module.
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM records WHERE client_id = ? AND module_id = ?`, clientID, id,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM modules WHERE client_id = ? AND id = ?`, clientID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*moduledomain.ModuleSchema, error) {
	var m moduledomain.ModuleSchema
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, name, description, slug, fields, mail_template_id, is_system, created_at, updated_at
		 FROM modules WHERE client_id = ? AND id = ?`,
		clientID,
		id,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, clientID snowflake.ID, slug string) (*moduledomain.ModuleSchema, error) {
	var m moduledomain.ModuleSchema
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, name, description, slug, fields, mail_template_id, is_system, created_at, updated_at
		 FROM modules WHERE client_id = ? AND slug = ?`,
		clientID,
		slug,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]moduledomain.ModuleSchema, error) {
	var modules []moduledomain.ModuleSchema
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, name, description, slug, fields, mail_template_id, is_system, created_at, updated_at
		 FROM modules WHERE client_id = ? ORDER BY created_at ASC`,
		clientID,
	).Scan(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *repo) RecordCounts(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (map[snowflake.ID]int64, error) {
	var rows []struct {
		ModuleID snowflake.ID `gorm:"column:module_id"`
		Count    int64        `gorm:"column:count"`
	}
	err := db.WithContext(ctx).Raw(
		`SELECT module_id, COUNT(*) AS count FROM records WHERE client_id = ? GROUP BY module_id`,
		clientID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[snowflake.ID]int64, len(rows))
	for _, row := range rows {
		counts[row.ModuleID] = row.Count
	}
	return counts, nil
}
