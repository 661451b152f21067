package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	modulerepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/repository"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc    recorddomain.Service
	conn   *gorm.DB
	ctx    context.Context
	module *moduledomain.ModuleSchema
}

func newFixture(t *testing.T, fields moduledomain.FieldList) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&moduledomain.ModuleSchema{}, &recorddomain.Record{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clientID := node.Generate()
	now := time.Now().UTC()
	m := &moduledomain.ModuleSchema{
		ID:        node.Generate(),
		ClientID:  clientID,
		Name:      "Test Module",
		Slug:      "test-module",
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, conn.Create(m).Error)

	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       repository.Provide(),
		ModuleRepo: modulerepository.Provide(),
	})

	return &fixture{
		svc:    svc,
		conn:   conn,
		ctx:    clientctx.WithClientID(context.Background(), clientID.Int64()),
		module: m,
	}
}

func leadsFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixture(t, moduledomain.FieldList{
		{Name: "name", Label: "Name", Type: moduledomain.FieldTypeText, Required: true},
		{Name: "email", Label: "Email", Type: moduledomain.FieldTypeEmail},
		{Name: "status", Label: "Status", Type: moduledomain.FieldTypeSelect, Options: []string{"New", "Won", "Lost"}},
		{Name: "budget", Label: "Budget", Type: moduledomain.FieldTypeNumber},
		{Name: "subscribed", Label: "Subscribed", Type: moduledomain.FieldTypeCheckbox},
		{Name: "follow_up", Label: "Follow Up", Type: moduledomain.FieldTypeDate},
	})
}

func (f *fixture) bySlug() recorddomain.ModuleRef {
	return recorddomain.ModuleRef{ModuleSlug: f.module.Slug}
}

func TestCreateCoercesValues(t *testing.T) {
	f := leadsFixture(t)

	resp, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data: map[string]any{
			"name":       "  Ada Lovelace  ",
			"email":      "ada@example.com",
			"status":     "New",
			"budget":     "1500.50",
			"subscribed": true,
			"follow_up":  "2026-02-01",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resp.Data["name"])
	assert.Equal(t, 1500.5, resp.Data["budget"])
	assert.Equal(t, true, resp.Data["subscribed"])
}

func TestCreateAppliesDefaults(t *testing.T) {
	f := leadsFixture(t)

	resp, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data:      map[string]any{"name": "Minimal"},
	})
	require.NoError(t, err)

	assert.Equal(t, "", resp.Data["email"])
	assert.Equal(t, "", resp.Data["status"])
	assert.Equal(t, false, resp.Data["subscribed"])
}

func TestCreateCollectsAllViolations(t *testing.T) {
	f := leadsFixture(t)

	_, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data: map[string]any{
			"email":     "not-an-email",
			"status":    "Maybe",
			"budget":    "lots",
			"follow_up": "01/02/2026",
			"surprise":  "x",
		},
	})

	var verr *recorddomain.ValidationError
	require.ErrorAs(t, err, &verr)

	got := make(map[string]string, len(verr.Fields))
	for _, fe := range verr.Fields {
		got[fe.Field] = fe.Message
	}
	for _, field := range []string{"name", "email", "status", "budget", "follow_up", "surprise"} {
		assert.Contains(t, got, field)
	}
}

func TestRequiredCheckboxMustBeChecked(t *testing.T) {
	f := newFixture(t, moduledomain.FieldList{
		{Name: "consent", Label: "Consent", Type: moduledomain.FieldTypeCheckbox, Required: true},
	})

	_, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data:      map[string]any{"consent": false},
	})
	var verr *recorddomain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data:      map[string]any{"consent": true},
	})
	assert.NoError(t, err)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := leadsFixture(t)

	for i := 0; i < 5; i++ {
		status := "New"
		if i%2 == 1 {
			status = "Won"
		}
		_, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
			ModuleRef: f.bySlug(),
			Data: map[string]any{
				"name":   fmt.Sprintf("Lead %d", i),
				"status": status,
			},
		})
		require.NoError(t, err)
	}

	all, err := f.svc.List(f.ctx, recorddomain.ListRequest{ModuleRef: f.bySlug()})
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.PageInfo.Total)

	won, err := f.svc.List(f.ctx, recorddomain.ListRequest{ModuleRef: f.bySlug(), Status: "Won"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), won.PageInfo.Total)

	search, err := f.svc.List(f.ctx, recorddomain.ListRequest{ModuleRef: f.bySlug(), Query: "lead 3"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), search.PageInfo.Total)

	paged, err := f.svc.List(f.ctx, recorddomain.ListRequest{
		ModuleRef:  f.bySlug(),
		Pagination: pagination.Pagination{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Len(t, paged.Records, 2)
	assert.Equal(t, 3, paged.PageInfo.TotalPages)
	assert.True(t, paged.PageInfo.HasPrevious)
	assert.True(t, paged.PageInfo.HasNext)
}

func TestDeleteRecord(t *testing.T) {
	f := leadsFixture(t)

	created, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: f.bySlug(),
		Data:      map[string]any{"name": "To Delete"},
	})
	require.NoError(t, err)

	req := recorddomain.DeleteRequest{ModuleRef: f.bySlug(), RecordID: created.ID}
	require.NoError(t, f.svc.Delete(f.ctx, req))
	assert.ErrorIs(t, f.svc.Delete(f.ctx, req), recorddomain.ErrNotFound)
}

func TestLeadsStatusDefaultsToNew(t *testing.T) {
	f := leadsFixture(t)

	clientID, _ := clientctx.ClientIDFromContext(f.ctx)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	now := time.Now().UTC()
	leads := &moduledomain.ModuleSchema{
		ID:        node.Generate(),
		ClientID:  clientID,
		Name:      "Leads",
		Slug:      moduledomain.LeadsSlug,
		Fields:    moduledomain.LeadsFields(),
		IsSystem:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.conn.Create(leads).Error)

	resp, err := f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: recorddomain.ModuleRef{ModuleSlug: moduledomain.LeadsSlug},
		Data:      map[string]any{"name": "Walk In"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Data["status"])

	// An explicit status is left alone.
	resp, err = f.svc.Create(f.ctx, recorddomain.CreateRequest{
		ModuleRef: recorddomain.ModuleRef{ModuleSlug: moduledomain.LeadsSlug},
		Data:      map[string]any{"name": "Referral", "status": "Qualified"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Qualified", resp.Data["status"])
}

func TestModuleScoping(t *testing.T) {
	f := leadsFixture(t)

	// Unknown module slug.
	_, err := f.svc.List(f.ctx, recorddomain.ListRequest{
		ModuleRef: recorddomain.ModuleRef{ModuleSlug: "nope"},
	})
	assert.ErrorIs(t, err, recorddomain.ErrInvalidModule)

	// Another client cannot see this module even by the right slug.
	otherCtx := clientctx.WithClientID(context.Background(), snowflake.ID(42).Int64())
	_, err = f.svc.List(otherCtx, recorddomain.ListRequest{ModuleRef: f.bySlug()})
	assert.ErrorIs(t, err, recorddomain.ErrInvalidModule)
}
