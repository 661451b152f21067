// Package domain contains the record model for dynamic modules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Record is one row of module data. Data holds the field values keyed by
// field name.
type Record struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID      `gorm:"column:client_id;not null;index:ix_records_client_module,priority:1" json:"client_id"`
	ModuleID  snowflake.ID      `gorm:"column:module_id;not null;index:ix_records_client_module,priority:2" json:"module_id"`
	Data      datatypes.JSONMap `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "records" }
