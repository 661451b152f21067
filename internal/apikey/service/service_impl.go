package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  apikeydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  apikeydomain.Repository
	genID *snowflake.Node
}

func New(p Params) apikeydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Generate(ctx context.Context) (*apikeydomain.GenerateResponse, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return nil, apikeydomain.ErrInvalidClient
	}

	rawKey, err := apikeydomain.GenerateKey()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := &apikeydomain.APIKey{
		ID:         s.genID.Generate(),
		ClientID:   clientID,
		KeyHash:    apikeydomain.HashKey(rawKey),
		KeyPreview: apikeydomain.Preview(rawKey),
		IsActive:   true,
		CreatedAt:  now,
	}

	// One active key per client: the old key dies the moment the new one
	// exists.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeactivateForClient(ctx, tx, clientID, now); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, key)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("api key generated",
		zap.String("client_id", clientID.String()),
		zap.String("key_preview", key.KeyPreview),
	)

	return &apikeydomain.GenerateResponse{
		APIKey:     rawKey,
		KeyPreview: key.KeyPreview,
		CreatedAt:  key.CreatedAt,
	}, nil
}

func (s *Service) Revoke(ctx context.Context) error {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return apikeydomain.ErrInvalidClient
	}

	active, err := s.repo.FindActiveByClient(ctx, s.db, clientID)
	if err != nil {
		return err
	}
	if active == nil {
		return apikeydomain.ErrNotFound
	}

	if err := s.repo.DeactivateForClient(ctx, s.db, clientID, time.Now().UTC()); err != nil {
		return err
	}

	s.log.Info("api key revoked",
		zap.String("client_id", clientID.String()),
		zap.String("key_preview", active.KeyPreview),
	)
	return nil
}

func (s *Service) Status(ctx context.Context) (*apikeydomain.StatusResponse, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return nil, apikeydomain.ErrInvalidClient
	}

	active, err := s.repo.FindActiveByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &apikeydomain.StatusResponse{HasAPIKey: false}, nil
	}

	return &apikeydomain.StatusResponse{
		HasAPIKey:  true,
		KeyPreview: active.KeyPreview,
		CreatedAt:  &active.CreatedAt,
		LastUsedAt: active.LastUsedAt,
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawKey string) (snowflake.ID, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" || !strings.HasPrefix(rawKey, apikeydomain.KeyPrefix) {
		return 0, apikeydomain.ErrInvalidKey
	}

	hash := apikeydomain.HashKey(rawKey)
	key, err := s.repo.FindActiveByHash(ctx, s.db, hash)
	if err != nil {
		return 0, err
	}
	if key == nil {
		return 0, apikeydomain.ErrInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(key.KeyHash)) != 1 {
		return 0, apikeydomain.ErrInvalidKey
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastUsed(ctx, s.db, key.ID, now); err != nil {
		// Usage tracking never blocks an otherwise valid request.
		s.log.Warn("touch last_used_at", zap.Error(err))
	}

	return key.ClientID, nil
}
