package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
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
	Repo  mailtemplatedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  mailtemplatedomain.Repository
	genID *snowflake.Node
}

func New(p Params) mailtemplatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("mailtemplate.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req mailtemplatedomain.CreateRequest) (*mailtemplatedomain.Response, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return nil, mailtemplatedomain.ErrInvalidClient
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, mailtemplatedomain.ErrInvalidName
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, mailtemplatedomain.ErrInvalidSubject
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, mailtemplatedomain.ErrInvalidBody
	}
	if err := checkTemplate(subject, body); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &mailtemplatedomain.MailTemplate{
		ID:        s.genID.Generate(),
		ClientID:  clientID,
		Name:      name,
		Subject:   subject,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *Service) List(ctx context.Context) ([]mailtemplatedomain.Response, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return nil, mailtemplatedomain.ErrInvalidClient
	}

	templates, err := s.repo.List(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]mailtemplatedomain.Response, 0, len(templates))
	for i := range templates {
		responses = append(responses, *toResponse(&templates[i]))
	}
	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*mailtemplatedomain.Response, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *Service) Update(ctx context.Context, req mailtemplatedomain.UpdateRequest) (*mailtemplatedomain.Response, error) {
	t, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, mailtemplatedomain.ErrInvalidName
		}
		t.Name = name
	}
	if req.Subject != nil {
		subject := strings.TrimSpace(*req.Subject)
		if subject == "" {
			return nil, mailtemplatedomain.ErrInvalidSubject
		}
		t.Subject = subject
	}
	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		if body == "" {
			return nil, mailtemplatedomain.ErrInvalidBody
		}
		t.Body = body
	}
	if err := checkTemplate(t.Subject, t.Body); err != nil {
		return nil, err
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, t.ClientID, t.ID)
}

func (s *Service) Render(ctx context.Context, id snowflake.ID, clientID snowflake.ID, data map[string]any) (string, string, error) {
	t, err := s.repo.FindByID(ctx, s.db, clientID, id)
	if err != nil {
		return "", "", err
	}
	if t == nil {
		return "", "", mailtemplatedomain.ErrNotFound
	}

	subject, err := render("subject", t.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err := render("body", t.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func (s *Service) find(ctx context.Context, id string) (*mailtemplatedomain.MailTemplate, error) {
	clientID, ok := clientctx.ClientIDFromContext(ctx)
	if !ok || clientID == 0 {
		return nil, mailtemplatedomain.ErrInvalidClient
	}

	templateID, err := mailtemplatedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, mailtemplatedomain.ErrInvalidID
	}

	t, err := s.repo.FindByID(ctx, s.db, clientID, templateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, mailtemplatedomain.ErrNotFound
	}
	return t, nil
}

// checkTemplate rejects templates that do not parse, so breakage surfaces at
// save time rather than at send time.
func checkTemplate(subject, body string) error {
	if _, err := template.New("subject").Parse(subject); err != nil {
		return mailtemplatedomain.ErrInvalidTemplate
	}
	if _, err := template.New("body").Parse(body); err != nil {
		return mailtemplatedomain.ErrInvalidTemplate
	}
	return nil
}

func render(name, text string, data map[string]any) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", mailtemplatedomain.ErrInvalidTemplate
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", mailtemplatedomain.ErrInvalidTemplate
	}
	return buf.String(), nil
}

func toResponse(t *mailtemplatedomain.MailTemplate) *mailtemplatedomain.Response {
	return &mailtemplatedomain.Response{
		ID:        t.ID.String(),
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
