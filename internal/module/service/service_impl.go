package service

import (
	"context"
	"strings"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
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
	Repo  moduledomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  moduledomain.Repository
	genID *snowflake.Node
}

func New(p Params) moduledomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("module.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req moduledomain.CreateRequest) (*moduledomain.Response, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, moduledomain.ErrInvalidName
	}

	fields, err := buildFields(req.Fields)
	if err != nil {
		return nil, err
	}

	mailTemplateID, err := parseTemplateID(req.MailTemplateID)
	if err != nil {
		return nil, err
	}

	moduleSlug := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, clientID, moduleSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, moduledomain.ErrSlugTaken
	}

	now := time.Now().UTC()
	m := &moduledomain.ModuleSchema{
		ID:             s.genID.Generate(),
		ClientID:       clientID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Slug:           moduleSlug,
		Fields:         fields,
		MailTemplateID: mailTemplateID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, moduledomain.ErrSlugTaken
		}
		return nil, err
	}

	return s.toResponse(m, 0), nil
}

func (s *Service) List(ctx context.Context) ([]moduledomain.Summary, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	modules, err := s.repo.List(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.RecordCounts(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	summaries := make([]moduledomain.Summary, 0, len(modules))
	for i := range modules {
		m := &modules[i]
		summaries = append(summaries, moduledomain.Summary{
			ID:          m.ID.String(),
			Name:        m.Name,
			Slug:        m.Slug,
			Description: m.Description,
			FieldCount:  len(m.Fields),
			RecordCount: counts[m.ID],
			IsSystem:    m.IsSystem,
			CreatedAt:   m.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*moduledomain.Response, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	moduleID, err := moduledomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, moduledomain.ErrInvalidID
	}

	m, err := s.repo.FindByID(ctx, s.db, clientID, moduleID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, moduledomain.ErrNotFound
	}

	return s.withRecordCount(ctx, m)
}

func (s *Service) GetBySlug(ctx context.Context, moduleSlug string) (*moduledomain.Response, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(moduleSlug)
	if trimmed == "" {
		return nil, moduledomain.ErrNotFound
	}

	m, err := s.repo.FindBySlug(ctx, s.db, clientID, trimmed)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, moduledomain.ErrNotFound
	}

	return s.withRecordCount(ctx, m)
}

func (s *Service) Update(ctx context.Context, req moduledomain.UpdateRequest) (*moduledomain.Response, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	moduleID, err := moduledomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, moduledomain.ErrInvalidID
	}

	m, err := s.repo.FindByID(ctx, s.db, clientID, moduleID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, moduledomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, moduledomain.ErrInvalidName
		}
		// Renaming never re-derives the slug; public record URLs stay valid.
		m.Name = name
	}

	if req.Description != nil {
		m.Description = strings.TrimSpace(*req.Description)
	}

	fields, err := buildFields(req.Fields)
	if err != nil {
		return nil, err
	}
	m.Fields = fields

	mailTemplateID, err := parseTemplateID(req.MailTemplateID)
	if err != nil {
		return nil, err
	}
	m.MailTemplateID = mailTemplateID

	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, m); err != nil {
		return nil, err
	}

	return s.withRecordCount(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return err
	}

	moduleID, err := moduledomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return moduledomain.ErrInvalidID
	}

	m, err := s.repo.FindByID(ctx, s.db, clientID, moduleID)
	if err != nil {
		return err
	}
	if m == nil {
		return moduledomain.ErrNotFound
	}
	if m.IsSystem {
		return moduledomain.ErrSystemModule
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, clientID, moduleID)
	})
}

// EnsureLeads provisions the reserved leads module when the client does not
// have one yet.
func (s *Service) EnsureLeads(ctx context.Context) (*moduledomain.Response, error) {
	clientID, err := s.clientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, clientID, moduledomain.LeadsSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.withRecordCount(ctx, existing)
	}

	now := time.Now().UTC()
	m := &moduledomain.ModuleSchema{
		ID:          s.genID.Generate(),
		ClientID:    clientID,
		Name:        "Leads",
		Description: "Incoming leads",
		Slug:        moduledomain.LeadsSlug,
		Fields:      moduledomain.LeadsFields(),
		IsSystem:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a provisioning race; the winner's module is the one.
			winner, findErr := s.repo.FindBySlug(ctx, s.db, clientID, moduledomain.LeadsSlug)
			if findErr == nil && winner != nil {
				return s.withRecordCount(ctx, winner)
			}
		}
		return nil, err
	}

	s.log.Info("leads module provisioned", zap.String("client_id", clientID.String()))
	return s.toResponse(m, 0), nil
}

func buildFields(inputs []moduledomain.FieldInput) (moduledomain.FieldList, error) {
	if len(inputs) == 0 {
		return nil, moduledomain.ErrNoFields
	}

	fields := make(moduledomain.FieldList, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		label := strings.TrimSpace(input.Label)
		if label == "" {
			return nil, moduledomain.ErrFieldLabelRequired
		}

		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = moduledomain.FieldNameFromLabel(label)
		}
		if name == "" {
			return nil, moduledomain.ErrFieldLabelRequired
		}
		if _, dup := seen[name]; dup {
			return nil, moduledomain.ErrDuplicateFieldName
		}
		seen[name] = struct{}{}

		fieldType := moduledomain.FieldType(strings.TrimSpace(input.Type)).Normalize()

		var options []string
		if fieldType == moduledomain.FieldTypeSelect {
			for _, opt := range input.Options {
				opt = strings.TrimSpace(opt)
				if opt == "" {
					continue
				}
				options = append(options, opt)
			}
		}

		fields = append(fields, moduledomain.FieldDefinition{
			Name:        name,
			Label:       label,
			Type:        fieldType,
			Required:    input.Required,
			Options:     options,
			Placeholder: strings.TrimSpace(input.Placeholder),
		})
	}
	return fields, nil
}

func parseTemplateID(raw *string) (*snowflake.ID, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return nil, moduledomain.ErrInvalidTemplateID
	}
	return &parsed, nil
}

func (s *Service) withRecordCount(ctx context.Context, m *moduledomain.ModuleSchema) (*moduledomain.Response, error) {
	counts, err := s.repo.RecordCounts(ctx, s.db, m.ClientID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(m, counts[m.ID]), nil
}

func (s *Service) toResponse(m *moduledomain.ModuleSchema, recordCount int64) *moduledomain.Response {
	var mailTemplateID *string
	if m.MailTemplateID != nil {
		value := m.MailTemplateID.String()
		mailTemplateID = &value
	}

	return &moduledomain.Response{
		ID:             m.ID.String(),
		ClientID:       m.ClientID.String(),
		Name:           m.Name,
		Description:    m.Description,
		Slug:           m.Slug,
		Fields:         m.Fields,
		FieldCount:     len(m.Fields),
		RecordCount:    recordCount,
		MailTemplateID: mailTemplateID,
		IsSystem:       m.IsSystem,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (s *Service) clientIDFromContext(ctx context.Context) (snowflake.ID, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return 0, moduledomain.ErrInvalidClient
	}
	return clientID, nil
}
