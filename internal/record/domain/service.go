package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetByID(ctx context.Context, req GetRequest) (*Response, error)
	Delete(ctx context.Context, req DeleteRequest) error
}

// ModuleRef addresses a module by ID (admin surface) or slug (public
// surface). Exactly one should be set.
type ModuleRef struct {
	ModuleID   string
	ModuleSlug string
}

type CreateRequest struct {
	ModuleRef
	Data map[string]any
	// Notify triggers the module's mail template after a successful insert.
	// Set by the public surface only.
	Notify bool
}

type ListRequest struct {
	ModuleRef
	Query      string
	Status     string
	Pagination pagination.Pagination
}

type GetRequest struct {
	ModuleRef
	RecordID string
}

type DeleteRequest struct {
	ModuleRef
	RecordID string
}

type Response struct {
	ID        string         `json:"id"`
	ModuleID  string         `json:"module_id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ListResponse struct {
	Records  []Response          `json:"records"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidModule = errors.New("invalid_module")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

// FieldError reports one rejected field value.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every rejected field from a submission so the
// caller can surface all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation_failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation_failed: " + strings.Join(parts, "; ")
}

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
