package throttle

import (
	"context"
	"strconv"
	"time"

	"rentcar-backend/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const attemptKeyPrefix = "login_attempts:"

// RedisCounter keeps one sorted set per key, scored by unix milliseconds, so replicas share state.
type RedisCounter struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCounter(client redis.Cmdable, ttl time.Duration) *RedisCounter {
	return &RedisCounter{client: client, ttl: ttl}
}

func (c *RedisCounter) Recent(ctx context.Context, key string, since time.Time) ([]time.Time, error) {
	k := attemptKeyPrefix + key

	pipe := c.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "-inf", "("+strconv.FormatInt(since.UnixMilli(), 10))
	rangeCmd := pipe.ZRangeWithScores(ctx, k, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.Wrap(err, "read login attempts")
	}

	members := rangeCmd.Val()
	out := make([]time.Time, 0, len(members))
	for _, m := range members {
		out = append(out, time.UnixMilli(int64(m.Score)))
	}
	return out, nil
}

func (c *RedisCounter) Add(ctx context.Context, key string, at time.Time) error {
	k := attemptKeyPrefix + key

	pipe := c.client.TxPipeline()
	// unique member so equal timestamps are all counted
	pipe.ZAdd(ctx, k, &redis.Z{Score: float64(at.UnixMilli()), Member: uuid.NewString()})
	pipe.Expire(ctx, k, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errs.Wrap(err, "record login attempt")
	}
	return nil
}

func (c *RedisCounter) Clear(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, attemptKeyPrefix+key).Err(); err != nil {
		return errs.Wrap(err, "clear login attempts")
	}
	return nil
}
