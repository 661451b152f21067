package service

import (
	"context"
	"testing"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (mailtemplatedomain.Service, context.Context, snowflake.ID) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&mailtemplatedomain.MailTemplate{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	clientID := node.Generate()
	return svc, clientctx.WithClientID(context.Background(), clientID.Int64()), clientID
}

func TestCreateAndRender(t *testing.T) {
	svc, ctx, clientID := newTestService(t)

	created, err := svc.Create(ctx, mailtemplatedomain.CreateRequest{
		Name:    "New Lead",
		Subject: "New lead: {{.name}}",
		Body:    "<p>{{.name}} ({{.email}}) just came in.</p>",
	})
	require.NoError(t, err)

	templateID, err := mailtemplatedomain.ParseID(created.ID)
	require.NoError(t, err)

	subject, body, err := svc.Render(ctx, templateID, clientID, map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "New lead: Ada", subject)
	assert.Contains(t, body, "Ada (ada@example.com)")
}

func TestRenderEscapesHTML(t *testing.T) {
	svc, ctx, clientID := newTestService(t)

	created, err := svc.Create(ctx, mailtemplatedomain.CreateRequest{
		Name:    "Escape",
		Subject: "s",
		Body:    "<p>{{.notes}}</p>",
	})
	require.NoError(t, err)

	templateID, err := mailtemplatedomain.ParseID(created.ID)
	require.NoError(t, err)

	_, body, err := svc.Render(ctx, templateID, clientID, map[string]any{
		"notes": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestCreateRejectsBrokenTemplate(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	_, err := svc.Create(ctx, mailtemplatedomain.CreateRequest{
		Name:    "Broken",
		Subject: "s",
		Body:    "{{.name",
	})
	assert.ErrorIs(t, err, mailtemplatedomain.ErrInvalidTemplate)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, mailtemplatedomain.CreateRequest{
		Name:    "Original",
		Subject: "s",
		Body:    "b",
	})
	require.NoError(t, err)

	newSubject := "updated {{.name}}"
	updated, err := svc.Update(ctx, mailtemplatedomain.UpdateRequest{
		ID:      created.ID,
		Subject: &newSubject,
	})
	require.NoError(t, err)
	assert.Equal(t, newSubject, updated.Subject)
	assert.Equal(t, "Original", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, mailtemplatedomain.ErrNotFound)
}

func TestClientScoping(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, mailtemplatedomain.CreateRequest{
		Name:    "Scoped",
		Subject: "s",
		Body:    "b",
	})
	require.NoError(t, err)

	otherCtx := clientctx.WithClientID(context.Background(), snowflake.ID(7).Int64())
	_, err = svc.GetByID(otherCtx, created.ID)
	assert.ErrorIs(t, err, mailtemplatedomain.ErrNotFound)
}
