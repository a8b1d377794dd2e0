package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RedisLimiterStore is a fixed-window counter shared by every replica.
// It satisfies echo's middleware.RateLimiterStore.
type RedisLimiterStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
	log    *zap.Logger
}

func NewRedisLimiterStore(client *redis.Client, limit int, window time.Duration, log *zap.Logger) *RedisLimiterStore {
	return &RedisLimiterStore{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "login-limit:",
		log:    log,
	}
}

func (s *RedisLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := s.prefix + identifier
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		// fail open, the limiter is not worth a login outage
		s.log.Warn("login limiter incr", zap.Error(err))
		return true, nil
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.log.Warn("login limiter expire", zap.Error(err))
		}
	}
	return n <= s.limit, nil
}

// NewMemoryLimiterStore is the single-process variant of RedisLimiterStore:
// a token bucket per identifier refilling limit tokens per window.
func NewMemoryLimiterStore(limit int, window time.Duration) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: window,
	})
}

func NewLoginLimiter(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
		},
	})
}
