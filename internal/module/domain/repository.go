package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, module *ModuleSchema) error
	Update(ctx context.Context, db *gorm.DB, module *ModuleSchema) error
	Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*ModuleSchema, error)
	FindBySlug(ctx context.Context, db *gorm.DB, clientID snowflake.ID, slug string) (*ModuleSchema, error)
	List(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]ModuleSchema, error)
	RecordCounts(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (map[snowflake.ID]int64, error)
}
