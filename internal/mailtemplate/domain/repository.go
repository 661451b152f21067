package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, template *MailTemplate) error
	Update(ctx context.Context, db *gorm.DB, template *MailTemplate) error
	Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*MailTemplate, error)
	List(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]MailTemplate, error)
}
