package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/ratelimit"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// RateLimitStore is a fixed-window limiter shared by every API replica.
// Design notes:
// 1. Key layout: ratelimit:{client}:{window index}
// 2. INCR and EXPIRE run in one MULTI so a key never outlives its window
// 3. Counts reset at window boundaries, so a client may send up to 2x limit
//    across a boundary
type RateLimitStore struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimitStore allows limit requests per window for each key.
func NewRateLimitStore(client redis.Cmdable, limit int, window time.Duration) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

var _ ratelimit.Limiter = (*RateLimitStore)(nil)

// Allow counts one request for key in the current window.
func (s *RateLimitStore) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	now := s.now()
	slot := windowSlot(now, s.window)
	redisKey := windowKey(key, slot)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, s.window)
		return nil
	})
	if err != nil {
		return ratelimit.Decision{}, &apperrors.AppError{
			Code:    apperrors.ErrCodeRedisError,
			Message: "rate limit check failed",
			Err:     err,
		}
	}

	return decide(incr.Val(), s.limit, now, slot, s.window), nil
}

func windowSlot(now time.Time, window time.Duration) int64 {
	return now.UnixNano() / int64(window)
}

func windowKey(key string, slot int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, slot)
}

func decide(count int64, limit int, now time.Time, slot int64, window time.Duration) ratelimit.Decision {
	d := ratelimit.Decision{Limit: limit}
	if count <= int64(limit) {
		d.Allowed = true
		d.Remaining = limit - int(count)
		return d
	}
	windowEnd := time.Unix(0, (slot+1)*int64(window))
	d.RetryAfter = windowEnd.Sub(now)
	return d
}
