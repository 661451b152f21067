package clientctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ClientContextKey is the request context key for the active client ID.
type ClientContextKey struct{}

// WithClientID stores the client ID in the context.
func WithClientID(ctx context.Context, clientID int64) context.Context {
	return context.WithValue(ctx, ClientContextKey{}, clientID)
}

// ClientIDFromContext returns the client ID from context, if set.
func ClientIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(ClientContextKey{})
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
