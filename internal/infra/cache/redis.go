package cache

import (
	"context"
	"log/slog"
	"time"

	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const defaultDialTimeout = 5 * time.Second

// Connect returns a nil client when no Redis URL is configured. An unreachable server is
// not an error: the client reconnects on demand and callers treat its failures as misses.
func Connect(cfg config.RedisConfig) (*redis.Client, func(), error) {
	if cfg.URL == "" {
		slog.Info("Redis disabled, running without the ledger fast tier")
		return nil, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse redis url")
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	opts.DialTimeout = timeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable at startup, continuing on Postgres alone until it recovers",
			"addr", opts.Addr, "error", err)
	} else {
		slog.Info("Redis connection established")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	return client, cleanup, nil
}
