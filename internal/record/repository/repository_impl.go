package repository

import (
	"context"
	"strings"

	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() recorddomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *recorddomain.Record) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, clientID, moduleID, recordID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM records WHERE client_id = ? AND module_id = ? AND id = ?`,
		clientID, moduleID, recordID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clientID, moduleID, recordID snowflake.ID) (*recorddomain.Record, error) {
	var record recorddomain.Record
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, module_id, data, created_at, updated_at
		 FROM records WHERE client_id = ? AND module_id = ? AND id = ?`,
		clientID, moduleID, recordID,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, clientID, moduleID snowflake.ID, filter recorddomain.Filter, page pagination.Pagination) ([]recorddomain.Record, int64, error) {
	query := db.WithContext(ctx).
		Model(&recorddomain.Record{}).
		Where("client_id = ? AND module_id = ?", clientID, moduleID)

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where(datatypes.JSONQuery("data").Equals(status, "status"))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		// Substring match over the serialized document. Filtering stays in
		// the database so pagination counts remain correct.
		query = query.Where("LOWER(CAST(data AS TEXT)) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []recorddomain.Record
	err := query.
		Order("created_at DESC, id DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, clientID, moduleID snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM records WHERE client_id = ? AND module_id = ?`,
		clientID, moduleID,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
