package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/usecase/idempotency"

	"github.com/go-redis/redis/v8"
)

const ledgerKeyPrefix = "idempotency:"

// LedgerCache is the Redis fast tier of the idempotency ledger.
type LedgerCache struct {
	client redis.Cmdable
}

func NewLedgerCache(client redis.Cmdable) *LedgerCache {
	return &LedgerCache{client: client}
}

func (c *LedgerCache) Get(ctx context.Context, key string) (*idempotency.Record, error) {
	raw, err := c.client.Get(ctx, ledgerKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "redis get")
	}

	var rec idempotency.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errs.Wrap(err, "decode cached idempotency record")
	}
	return &rec, nil
}

func (c *LedgerCache) Set(ctx context.Context, rec *idempotency.Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errs.Wrap(err, "encode idempotency record")
	}
	if err := c.client.Set(ctx, ledgerKeyPrefix+rec.Key, raw, ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set")
	}
	return nil
}
