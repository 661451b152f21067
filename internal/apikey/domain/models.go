// Package domain contains the API credential model. Raw keys are shown once
// at generation time; only a hash and a masked preview are stored.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type APIKey struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID   snowflake.ID `gorm:"column:client_id;not null;index:ix_api_keys_client" json:"client_id"`
	KeyHash    string       `gorm:"column:key_hash;type:text;not null;uniqueIndex:ux_api_keys_hash" json:"-"`
	KeyPreview string       `gorm:"column:key_preview;type:text;not null" json:"key_preview"`
	IsActive   bool         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastUsedAt *time.Time   `gorm:"column:last_used_at" json:"last_used_at"`
	RevokedAt  *time.Time   `gorm:"column:revoked_at" json:"revoked_at"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (APIKey) TableName() string { return "api_keys" }
