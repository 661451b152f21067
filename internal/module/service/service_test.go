package service

import (
	"context"
	"testing"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/repository"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (moduledomain.Service, *gorm.DB, context.Context) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&moduledomain.ModuleSchema{}, &recorddomain.Record{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	ctx := clientctx.WithClientID(context.Background(), node.Generate().Int64())
	return svc, conn, ctx
}

func TestCreateDerivesFieldNames(t *testing.T) {
	svc, _, ctx := newTestService(t)

	resp, err := svc.Create(ctx, moduledomain.CreateRequest{
		Name: "Customer Feedback",
		Fields: []moduledomain.FieldInput{
			{Label: "Full Name", Type: "text", Required: true},
			{Label: "Budget (USD)", Type: "number"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "customer-feedback", resp.Slug)
	assert.Equal(t, "full_name", resp.Fields[0].Name)
	assert.Equal(t, "budget_usd", resp.Fields[1].Name)
	assert.Equal(t, 2, resp.FieldCount)
	assert.Equal(t, int64(0), resp.RecordCount)
}

func TestCreateValidation(t *testing.T) {
	svc, _, ctx := newTestService(t)

	cases := []struct {
		name string
		req  moduledomain.CreateRequest
		want error
	}{
		{
			name: "empty name",
			req:  moduledomain.CreateRequest{Name: "  ", Fields: []moduledomain.FieldInput{{Label: "A"}}},
			want: moduledomain.ErrInvalidName,
		},
		{
			name: "no fields",
			req:  moduledomain.CreateRequest{Name: "Empty"},
			want: moduledomain.ErrNoFields,
		},
		{
			name: "blank label",
			req:  moduledomain.CreateRequest{Name: "Blank", Fields: []moduledomain.FieldInput{{Label: " "}}},
			want: moduledomain.ErrFieldLabelRequired,
		},
		{
			name: "duplicate field name",
			req: moduledomain.CreateRequest{Name: "Dup", Fields: []moduledomain.FieldInput{
				{Label: "Phone #"},
				{Label: "Phone!"},
			}},
			want: moduledomain.ErrDuplicateFieldName,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _, ctx := newTestService(t)

	req := moduledomain.CreateRequest{
		Name:   "Projects",
		Fields: []moduledomain.FieldInput{{Label: "Title"}},
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, moduledomain.ErrSlugTaken)

	// Same name under another client is fine.
	other := clientctx.WithClientID(context.Background(), snowflake.ID(99).Int64())
	_, err = svc.Create(other, req)
	assert.NoError(t, err)
}

func TestUpdateKeepsSlugAndFieldNames(t *testing.T) {
	svc, _, ctx := newTestService(t)

	created, err := svc.Create(ctx, moduledomain.CreateRequest{
		Name:   "Vendors",
		Fields: []moduledomain.FieldInput{{Label: "Company Name"}},
	})
	require.NoError(t, err)

	newName := "Suppliers"
	updated, err := svc.Update(ctx, moduledomain.UpdateRequest{
		ID:   created.ID,
		Name: &newName,
		Fields: []moduledomain.FieldInput{
			// Existing field keeps its stored name even after a relabel.
			{Name: "company_name", Label: "Supplier Name"},
			{Label: "Contact Email", Type: "email"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "vendors", updated.Slug)
	assert.Equal(t, "Suppliers", updated.Name)
	assert.Equal(t, "company_name", updated.Fields[0].Name)
	assert.Equal(t, "Supplier Name", updated.Fields[0].Label)
	assert.Equal(t, "contact_email", updated.Fields[1].Name)
}

func TestDeleteCascadesRecords(t *testing.T) {
	svc, conn, ctx := newTestService(t)

	created, err := svc.Create(ctx, moduledomain.CreateRequest{
		Name:   "Tickets",
		Fields: []moduledomain.FieldInput{{Label: "Subject"}},
	})
	require.NoError(t, err)

	clientID, _ := clientctx.ClientIDFromContext(ctx)
	moduleID, err := moduledomain.ParseID(created.ID)
	require.NoError(t, err)

	record := recorddomain.Record{
		ID:       snowflake.ID(1001),
		ClientID: clientID,
		ModuleID: moduleID,
		Data:     map[string]any{"subject": "hello"},
	}
	require.NoError(t, conn.Create(&record).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var count int64
	require.NoError(t, conn.Model(&recorddomain.Record{}).Where("module_id = ?", moduleID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), moduledomain.ErrNotFound)
}

func TestEnsureLeads(t *testing.T) {
	svc, _, ctx := newTestService(t)

	first, err := svc.EnsureLeads(ctx)
	require.NoError(t, err)
	assert.True(t, first.IsSystem)
	assert.Equal(t, moduledomain.LeadsSlug, first.Slug)

	status, ok := moduledomain.FieldList(first.Fields).ByName("status")
	require.True(t, ok, "leads module missing status field")
	assert.Equal(t, moduledomain.FieldTypeSelect, status.Type)
	assert.Len(t, status.Options, 7)

	second, err := svc.EnsureLeads(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID), moduledomain.ErrSystemModule)
}

func TestListSummaries(t *testing.T) {
	svc, conn, ctx := newTestService(t)

	created, err := svc.Create(ctx, moduledomain.CreateRequest{
		Name:   "Events",
		Fields: []moduledomain.FieldInput{{Label: "Title"}, {Label: "Date", Type: "date"}},
	})
	require.NoError(t, err)

	clientID, _ := clientctx.ClientIDFromContext(ctx)
	moduleID, err := moduledomain.ParseID(created.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		record := recorddomain.Record{
			ID:       snowflake.ID(2000 + i),
			ClientID: clientID,
			ModuleID: moduleID,
			Data:     map[string]any{"title": "x"},
		}
		require.NoError(t, conn.Create(&record).Error)
	}

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(3), summaries[0].RecordCount)
	assert.Equal(t, 2, summaries[0].FieldCount)
}
