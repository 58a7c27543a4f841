package components

import (
	"log/slog"

	"rentcar-backend/internal/infra/cache"
	"rentcar-backend/internal/infra/gateway"
	"rentcar-backend/internal/infra/throttle"
	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/pkg/password"
	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/fraud"
	"rentcar-backend/internal/usecase/idempotency"
	"rentcar-backend/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

const throttleStoreRedis = "redis"

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewPaymentGateway,
		fx.Annotate(
			NewLedger,
			fx.As(new(commands.IdempotencyLedger)),
		),
		NewAttemptCounter,
		NewPasswordHasher,
	),
)

func NewPaymentGateway(cfg config.Config) shared.PaymentGateway {
	return gateway.New(cfg.Gateway)
}

// NewLedger runs on Postgres alone when Redis is not configured.
func NewLedger(cfg config.Config, durable idempotency.DurableStore, client *redis.Client) *idempotency.Ledger {
	var fast idempotency.FastStore
	if client != nil {
		fast = cache.NewLedgerCache(client)
	}
	return idempotency.NewLedger(durable, fast, cfg.Idempotency.TTL)
}

func NewAttemptCounter(cfg config.Config, client *redis.Client) fraud.AttemptCounter {
	if cfg.Risk.ThrottleStore == throttleStoreRedis {
		if client != nil {
			return throttle.NewRedisCounter(client, cfg.Risk.LoginWindow)
		}
		slog.Warn("RISK_THROTTLE_STORE=redis without REDIS_URL, using in-memory login throttle")
	}
	return throttle.NewMemoryCounter(cfg.Risk.LoginWindow)
}

func NewPasswordHasher() *password.Hasher {
	return password.NewHasher(bcrypt.DefaultCost)
}
