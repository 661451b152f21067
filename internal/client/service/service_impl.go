package service

import (
	"context"
	"strings"
	"time"

	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  clientdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  clientdomain.Repository
	genID *snowflake.Node
}

func New(p Params) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req clientdomain.CreateRequest) (*clientdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, clientdomain.ErrInvalidName
	}

	email := strings.TrimSpace(req.ContactEmail)
	if email != "" && !strings.Contains(email, "@") {
		return nil, clientdomain.ErrInvalidEmail
	}

	clientSlug := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, clientSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, clientdomain.ErrSlugTaken
	}

	now := time.Now().UTC()
	client := &clientdomain.Client{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         clientSlug,
		ContactEmail: email,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, clientdomain.ErrSlugTaken
		}
		return nil, err
	}

	return s.toResponse(client), nil
}

func (s *Service) List(ctx context.Context) ([]clientdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]clientdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*clientdomain.Response, error) {
	clientID, err := clientdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, clientdomain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}
	return s.toResponse(client), nil
}

func (s *Service) GetBySlug(ctx context.Context, clientSlug string) (*clientdomain.Response, error) {
	trimmed := strings.TrimSpace(clientSlug)
	if trimmed == "" {
		return nil, clientdomain.ErrNotFound
	}

	client, err := s.repo.FindBySlug(ctx, s.db, trimmed)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}
	return s.toResponse(client), nil
}

func (s *Service) Update(ctx context.Context, req clientdomain.UpdateRequest) (*clientdomain.Response, error) {
	clientID, err := clientdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, clientdomain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, clientdomain.ErrInvalidName
		}
		// Renaming never changes the slug; public URLs stay stable.
		client.Name = name
	}

	if req.ContactEmail != nil {
		email := strings.TrimSpace(*req.ContactEmail)
		if email != "" && !strings.Contains(email, "@") {
			return nil, clientdomain.ErrInvalidEmail
		}
		client.ContactEmail = email
	}

	client.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return nil, err
	}
	return s.toResponse(client), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := clientdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return clientdomain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return clientdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, clientID)
}

func (s *Service) toResponse(client *clientdomain.Client) *clientdomain.Response {
	return &clientdomain.Response{
		ID:           client.ID.String(),
		Name:         client.Name,
		Slug:         client.Slug,
		ContactEmail: client.ContactEmail,
		IsDefault:    client.IsDefault,
		Metadata:     client.Metadata,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}
