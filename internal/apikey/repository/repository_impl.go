package repository

import (
	"context"
	"time"

	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() apikeydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, key *apikeydomain.APIKey) error {
	return db.WithContext(ctx).Create(key).Error
}

func (r *repo) FindActiveByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*apikeydomain.APIKey, error) {
	var key apikeydomain.APIKey
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, key_hash, key_preview, is_active, last_used_at, revoked_at, created_at
		 FROM api_keys WHERE client_id = ? AND is_active = ?`,
		clientID, true,
	).Scan(&key).Error
	if err != nil {
		return nil, err
	}
	if key.ID == 0 {
		return nil, nil
	}
	return &key, nil
}

func (r *repo) FindActiveByHash(ctx context.Context, db *gorm.DB, hash string) (*apikeydomain.APIKey, error) {
	var key apikeydomain.APIKey
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, key_hash, key_preview, is_active, last_used_at, revoked_at, created_at
		 FROM api_keys WHERE key_hash = ? AND is_active = ?`,
		hash, true,
	).Scan(&key).Error
	if err != nil {
		return nil, err
	}
	if key.ID == 0 {
		return nil, nil
	}
	return &key, nil
}

func (r *repo) DeactivateForClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, revokedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE api_keys SET is_active = ?, revoked_at = ? WHERE client_id = ? AND is_active = ?`,
		false, revokedAt, clientID, true,
	).Error
}

func (r *repo) TouchLastUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, usedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`,
		usedAt, id,
	).Error
}
