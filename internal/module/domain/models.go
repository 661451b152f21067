// Package domain contains the schema model for dynamic modules.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// FieldType enumerates the supported field kinds. Consumers must treat any
// unrecognized value as FieldTypeText.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeEmail, FieldTypeDate,
		FieldTypeTextArea, FieldTypeSelect, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Normalize maps unknown types onto text so every consumer dispatches over a
// closed set.
func (t FieldType) Normalize() FieldType {
	if t.Known() {
		return t
	}
	return FieldTypeText
}

// FieldDefinition is the atomic schema unit of a module.
type FieldDefinition struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// FieldList stores the ordered field definitions as a JSON document.
type FieldList []FieldDefinition

// Value implements driver.Valuer.
func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		f = FieldList{}
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *FieldList) Scan(value any) error {
	if value == nil {
		*f = FieldList{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, f)
	case string:
		return json.Unmarshal([]byte(data), f)
	default:
		return errors.New("unsupported field list source")
	}
}

// ByName returns the field with the given name, if present.
func (f FieldList) ByName(name string) (FieldDefinition, bool) {
	for _, field := range f {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// ModuleSchema is an operator-defined collection of typed fields.
type ModuleSchema struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	ClientID       snowflake.ID  `gorm:"column:client_id;not null;uniqueIndex:ux_modules_client_slug,priority:1" json:"client_id"`
	Name           string        `gorm:"type:text;not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	Slug           string        `gorm:"type:text;not null;uniqueIndex:ux_modules_client_slug,priority:2" json:"slug"`
	Fields         FieldList     `gorm:"type:jsonb;not null" json:"fields"`
	MailTemplateID *snowflake.ID `gorm:"column:mail_template_id" json:"mail_template_id"`
	IsSystem       bool          `gorm:"column:is_system;not null;default:false" json:"is_system"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ModuleSchema) TableName() string { return "modules" }
