package server

import (
	"strings"
	"sync"
	"time"

	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	"github.com/gin-gonic/gin"
)

const contextClientIDKey = "client_id"

// ClientContext resolves the :clientId path parameter and scopes the request
// to that client.
func (s *Server) ClientContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Param("clientId"))
		if raw == "" {
			AbortWithError(c, ErrNotFound)
			return
		}

		clientID, err := clientdomain.ParseID(raw)
		if err != nil || clientID == 0 {
			AbortWithError(c, ErrNotFound)
			return
		}

		client, err := s.clientRepo.FindByID(c.Request.Context(), s.db, clientID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if client == nil {
			AbortWithError(c, ErrNotFound)
			return
		}

		c.Set(contextClientIDKey, client.ID.String())
		c.Request = c.Request.WithContext(
			clientctx.WithClientID(c.Request.Context(), client.ID.Int64()),
		)
		c.Next()
	}
}

// rateLimiter is a fixed-window in-process limiter for low-volume admin
// actions like key generation.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		hits:   map[string][]time.Time{},
	}
}

func (l *rateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false
	}

	l.hits[key] = append(kept, now)
	return true
}
