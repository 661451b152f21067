// Package domain contains the mail template model. Templates use Go
// html/template syntax; record field values are exposed by field name.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type MailTemplate struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID `gorm:"column:client_id;not null;index:ix_mail_templates_client" json:"client_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Subject   string       `gorm:"type:text;not null" json:"subject"`
	Body      string       `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (MailTemplate) TableName() string { return "mail_templates" }
