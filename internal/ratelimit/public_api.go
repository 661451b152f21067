package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyPublicAPIClient = "public:api:client:%s"

// PublicAPILimiter throttles public record traffic per client. A nil limiter
// allows everything, so the service runs without redis.
type PublicAPILimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewPublicAPILimiter(cfg config.Config) *PublicAPILimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &PublicAPILimiter{
		bucket: NewTokenBucket(client),
		rate:   cfg.PublicAPIRate,
		burst:  cfg.PublicAPIBurst,
	}
}

func (l *PublicAPILimiter) Allow(ctx context.Context, clientID string) (*Result, error) {
	if l == nil || l.bucket == nil {
		return &Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyPublicAPIClient, strings.TrimSpace(clientID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
