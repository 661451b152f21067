package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Generate issues a fresh key for the client in scope, revoking any
	// previously active one. The raw key is only returned here.
	Generate(ctx context.Context) (*GenerateResponse, error)
	Revoke(ctx context.Context) error
	Status(ctx context.Context) (*StatusResponse, error)
	// Authenticate resolves a raw key to its client. Callers record usage.
	Authenticate(ctx context.Context, rawKey string) (snowflake.ID, error)
}

type GenerateResponse struct {
	APIKey     string    `json:"api_key"`
	KeyPreview string    `json:"api_key_preview"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatusResponse struct {
	HasAPIKey  bool       `json:"has_api_key"`
	KeyPreview string     `json:"api_key_preview,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidKey    = errors.New("invalid_api_key")
	ErrNotFound      = errors.New("not_found")
)
