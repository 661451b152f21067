package server

import (
	"strings"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const HeaderAPIKey = "X-API-Key"

// APIKeyRequired authenticates public requests with the client's API key.
// Client identity is derived solely from the api_keys table; the path slug
// is checked afterwards against the authenticated client.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := strings.TrimSpace(c.GetHeader(HeaderAPIKey))
		if rawKey == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		clientID, err := s.apiKeySvc.Authenticate(c.Request.Context(), rawKey)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextClientIDKey, clientID.String())
		c.Request = c.Request.WithContext(
			clientctx.WithClientID(c.Request.Context(), clientID.Int64()),
		)
		c.Next()
	}
}

// PublicRateLimit throttles public record traffic per authenticated client.
func (s *Server) PublicRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.publicLimiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		clientID, ok := clientctx.ClientIDFromContext(ctx)
		if !ok || clientID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		result, err := s.publicLimiter.Allow(ctx, clientID.String())
		if err != nil {
			logger.FromContext(ctx).Warn("public rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(ctx, clientID.String(), c.FullPath(), "client-rate")
			}
			AbortWithError(c, ErrRateLimited)
			return
		}

		if s.obsMetrics != nil {
			s.obsMetrics.RecordRateLimitAllowed(ctx, clientID.String(), c.FullPath())
		}
		c.Next()
	}
}
