package service

import (
	"context"
	"strings"
	"testing"

	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (apikeydomain.Service, context.Context) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&apikeydomain.APIKey{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	ctx := clientctx.WithClientID(context.Background(), node.Generate().Int64())
	return svc, ctx
}

func TestGenerateIssuesKey(t *testing.T) {
	svc, ctx := newTestService(t)

	resp, err := svc.Generate(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.APIKey, apikeydomain.KeyPrefix))
	assert.Len(t, resp.APIKey, len(apikeydomain.KeyPrefix)+64)
	assert.Equal(t, resp.APIKey[:8]+"..."+resp.APIKey[len(resp.APIKey)-4:], resp.KeyPreview)

	clientID, _ := clientctx.ClientIDFromContext(ctx)
	got, err := svc.Authenticate(ctx, resp.APIKey)
	require.NoError(t, err)
	assert.Equal(t, clientID, got)
}

func TestRegenerateInvalidatesOldKey(t *testing.T) {
	svc, ctx := newTestService(t)

	first, err := svc.Generate(ctx)
	require.NoError(t, err)
	second, err := svc.Generate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.APIKey, second.APIKey)

	_, err = svc.Authenticate(ctx, first.APIKey)
	assert.ErrorIs(t, err, apikeydomain.ErrInvalidKey)
	_, err = svc.Authenticate(ctx, second.APIKey)
	assert.NoError(t, err)
}

func TestRevoke(t *testing.T) {
	svc, ctx := newTestService(t)

	assert.ErrorIs(t, svc.Revoke(ctx), apikeydomain.ErrNotFound)

	resp, err := svc.Generate(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx))

	_, err = svc.Authenticate(ctx, resp.APIKey)
	assert.ErrorIs(t, err, apikeydomain.ErrInvalidKey)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.HasAPIKey)
}

func TestStatus(t *testing.T) {
	svc, ctx := newTestService(t)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.HasAPIKey)
	assert.Empty(t, status.KeyPreview)

	resp, err := svc.Generate(ctx)
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.HasAPIKey)
	assert.Equal(t, resp.KeyPreview, status.KeyPreview)
	assert.Nil(t, status.LastUsedAt, "last_used_at set before any use")

	_, err = svc.Authenticate(ctx, resp.APIKey)
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.NotNil(t, status.LastUsedAt, "last_used_at not recorded")
}

func TestAuthenticateRejectsMalformedKeys(t *testing.T) {
	svc, ctx := newTestService(t)

	for _, key := range []string{"", "nonsense", "sk_live_abc", apikeydomain.KeyPrefix + "deadbeef"} {
		_, err := svc.Authenticate(ctx, key)
		assert.ErrorIs(t, err, apikeydomain.ErrInvalidKey, "key %q", key)
	}
}
