package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// LeadsSlug is the reserved slug auto-provisioned for the leads
// specialization.
const LeadsSlug = "leads"

// LeadsFields is the fixed schema of the leads module.
func LeadsFields() FieldList {
	return FieldList{
		{Name: "name", Label: "Name", Type: FieldTypeText, Required: true},
		{Name: "email", Label: "Email", Type: FieldTypeEmail},
		{Name: "phone", Label: "Phone", Type: FieldTypeText},
		{Name: "company", Label: "Company", Type: FieldTypeText},
		{Name: "status", Label: "Status", Type: FieldTypeSelect, Options: []string{
			"New", "Contacted", "Qualified", "Proposal", "Negotiation", "Won", "Lost",
		}},
		{Name: "source", Label: "Source", Type: FieldTypeText},
		{Name: "budget", Label: "Budget", Type: FieldTypeNumber},
		{Name: "notes", Label: "Notes", Type: FieldTypeTextArea},
	}
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	GetBySlug(ctx context.Context, slug string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	EnsureLeads(ctx context.Context) (*Response, error)
}

// FieldInput is one field definition as submitted by the operator. Name is
// optional: new fields get a name derived from the label, existing fields
// keep the name they were created with.
type FieldInput struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Placeholder string   `json:"placeholder"`
}

type CreateRequest struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Fields         []FieldInput `json:"fields"`
	MailTemplateID *string      `json:"mail_template_id"`
}

type UpdateRequest struct {
	ID             string       `json:"id"`
	Name           *string      `json:"name,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Fields         []FieldInput `json:"fields"`
	MailTemplateID *string      `json:"mail_template_id"`
}

type Response struct {
	ID             string            `json:"id"`
	ClientID       string            `json:"client_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Slug           string            `json:"slug"`
	Fields         []FieldDefinition `json:"fields"`
	FieldCount     int               `json:"field_count"`
	RecordCount    int64             `json:"record_count"`
	MailTemplateID *string           `json:"mail_template_id,omitempty"`
	IsSystem       bool              `json:"is_system"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Summary is the list-view projection of a module.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	FieldCount  int       `json:"field_count"`
	RecordCount int64     `json:"record_count"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidName        = errors.New("invalid_name")
	ErrNoFields           = errors.New("no_fields")
	ErrFieldLabelRequired = errors.New("field_label_required")
	ErrDuplicateFieldName = errors.New("duplicate_field_name")
	ErrInvalidTemplateID  = errors.New("invalid_mail_template_id")
	ErrSlugTaken          = errors.New("slug_taken")
	ErrSystemModule       = errors.New("system_module")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidID          = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
