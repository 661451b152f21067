package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *APIKey) error
	FindActiveByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*APIKey, error)
	FindActiveByHash(ctx context.Context, db *gorm.DB, hash string) (*APIKey, error)
	DeactivateForClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, revokedAt time.Time) error
	TouchLastUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, usedAt time.Time) error
}
