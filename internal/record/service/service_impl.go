package service

import (
	"context"
	"strings"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/notify"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       recorddomain.Repository
	ModuleRepo moduledomain.Repository
	Notifier   *notify.Notifier `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       recorddomain.Repository
	moduleRepo moduledomain.Repository
	genID      *snowflake.Node
	notifier   *notify.Notifier
}

func New(p Params) recorddomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("record.service"),
		repo:       p.Repo,
		moduleRepo: p.ModuleRepo,
		genID:      p.GenID,
		notifier:   p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req recorddomain.CreateRequest) (*recorddomain.Response, error) {
	clientID, m, err := s.resolveModule(ctx, req.ModuleRef)
	if err != nil {
		return nil, err
	}

	data, err := coerceData(m.Fields, req.Data)
	if err != nil {
		return nil, err
	}

	// Leads start their pipeline at New when the caller leaves status unset.
	if m.IsSystem && m.Slug == moduledomain.LeadsSlug && data["status"] == "" {
		data["status"] = "New"
	}

	now := time.Now().UTC()
	record := &recorddomain.Record{
		ID:        s.genID.Generate(),
		ClientID:  clientID,
		ModuleID:  m.ID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	if req.Notify && s.notifier != nil {
		s.notifier.RecordCreated(ctx, m, data)
	}

	return toResponse(record), nil
}

func (s *Service) List(ctx context.Context, req recorddomain.ListRequest) (*recorddomain.ListResponse, error) {
	clientID, m, err := s.resolveModule(ctx, req.ModuleRef)
	if err != nil {
		return nil, err
	}

	page := req.Pagination.Normalize()

	filter := recorddomain.Filter{Query: req.Query, Status: req.Status}
	records, total, err := s.repo.List(ctx, s.db, clientID, m.ID, filter, page)
	if err != nil {
		return nil, err
	}

	responses := make([]recorddomain.Response, 0, len(records))
	for i := range records {
		responses = append(responses, *toResponse(&records[i]))
	}

	return &recorddomain.ListResponse{
		Records:  responses,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, req recorddomain.GetRequest) (*recorddomain.Response, error) {
	clientID, m, err := s.resolveModule(ctx, req.ModuleRef)
	if err != nil {
		return nil, err
	}

	recordID, err := recorddomain.ParseID(strings.TrimSpace(req.RecordID))
	if err != nil {
		return nil, recorddomain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, s.db, clientID, m.ID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, recorddomain.ErrNotFound
	}

	return toResponse(record), nil
}

func (s *Service) Delete(ctx context.Context, req recorddomain.DeleteRequest) error {
	clientID, m, err := s.resolveModule(ctx, req.ModuleRef)
	if err != nil {
		return err
	}

	recordID, err := recorddomain.ParseID(strings.TrimSpace(req.RecordID))
	if err != nil {
		return recorddomain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, s.db, clientID, m.ID, recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return recorddomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, clientID, m.ID, recordID)
}

// resolveModule loads the module addressed by the request within the
// client's scope.
func (s *Service) resolveModule(ctx context.Context, ref recorddomain.ModuleRef) (snowflake.ID, *moduledomain.ModuleSchema, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return 0, nil, recorddomain.ErrInvalidClient
	}

	var (
		m   *moduledomain.ModuleSchema
		err error
	)
	switch {
	case strings.TrimSpace(ref.ModuleID) != "":
		moduleID, parseErr := moduledomain.ParseID(strings.TrimSpace(ref.ModuleID))
		if parseErr != nil {
			return 0, nil, recorddomain.ErrInvalidModule
		}
		m, err = s.moduleRepo.FindByID(ctx, s.db, clientID, moduleID)
	case strings.TrimSpace(ref.ModuleSlug) != "":
		m, err = s.moduleRepo.FindBySlug(ctx, s.db, clientID, strings.TrimSpace(ref.ModuleSlug))
	default:
		return 0, nil, recorddomain.ErrInvalidModule
	}
	if err != nil {
		return 0, nil, err
	}
	if m == nil {
		return 0, nil, recorddomain.ErrInvalidModule
	}
	return clientID, m, nil
}

func toResponse(record *recorddomain.Record) *recorddomain.Response {
	return &recorddomain.Response{
		ID:        record.ID.String(),
		ModuleID:  record.ModuleID.String(),
		Data:      map[string]any(record.Data),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
