package domain

import (
	"context"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Filter narrows a record listing. Query matches any field value as a
// substring, Status matches the status field exactly.
type Filter struct {
	Query  string
	Status string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	Delete(ctx context.Context, db *gorm.DB, clientID, moduleID, recordID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, clientID, moduleID, recordID snowflake.ID) (*Record, error)
	List(ctx context.Context, db *gorm.DB, clientID, moduleID snowflake.ID, filter Filter, page pagination.Pagination) ([]Record, int64, error)
	Count(ctx context.Context, db *gorm.DB, clientID, moduleID snowflake.ID) (int64, error)
}
