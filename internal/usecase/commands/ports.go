package commands

import (
	"context"
	"time"

	"rentcar-backend/internal/domain/risk"
	"rentcar-backend/internal/usecase/idempotency"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commandsmock

type IdempotencyLedger interface {
	Lookup(ctx context.Context, key string) (*idempotency.Record, bool, error)
	Commit(ctx context.Context, rec *idempotency.Record) error
}

type RiskAssessor interface {
	Assess(ctx context.Context, userID uuid.UUID, vehicleID int64, pickup, dropoff time.Time) (risk.Assessment, error)
}

type FraudAlertWriter interface {
	WriteAlert(ctx context.Context, alert shared.FraudAlert) error
}

type LoginThrottle interface {
	Check(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) error
	RecordSuccess(ctx context.Context, email string) error
}

type RegistrationGuard interface {
	Check(ctx context.Context, email, phone string) error
}

// SagaOptions are the tunables of the reservation saga.
type SagaOptions struct {
	GatewayTimeout        time.Duration
	RequireIdempotencyKey bool
	BlockHighRisk         bool
}
