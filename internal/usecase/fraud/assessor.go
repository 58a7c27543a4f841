package fraud

import (
	"context"
	"log/slog"
	"time"

	"rentcar-backend/internal/domain/risk"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type RiskSignals interface {
	RiskSignals(ctx context.Context, userID uuid.UUID, vehicleID int64) (*shared.RiskSignalsSnapshot, error)
}

type RiskAssessor struct {
	signals RiskSignals
	clock   clock.Clock
	policy  risk.Policy
}

func NewRiskAssessor(signals RiskSignals, clk clock.Clock, expensiveDailyPrice int64) *RiskAssessor {
	return &RiskAssessor{
		signals: signals,
		clock:   clk,
		policy:  risk.Policy{ExpensiveDailyPrice: expensiveDailyPrice},
	}
}

// Assess gathers the read-side facts for one booking and scores them.
func (a *RiskAssessor) Assess(ctx context.Context, userID uuid.UUID, vehicleID int64, pickup, dropoff time.Time) (risk.Assessment, error) {
	snap, err := a.signals.RiskSignals(ctx, userID, vehicleID)
	if err != nil {
		return risk.Assessment{}, err
	}

	p := a.policy
	p.Now = a.clock.Now()
	assessment := risk.Score(risk.Facts{
		Pickup:                pickup,
		Return:                dropoff,
		AccountCreatedAt:      snap.AccountCreatedAt,
		VehicleDailyPrice:     snap.VehicleDailyPrice,
		OpenReservations:      snap.OpenReservations,
		TotalReservations:     snap.TotalReservations,
		CancelledReservations: snap.CancelledReservations,
	}, p)

	LogAssessment(ctx, assessment, userID, vehicleID)
	return assessment, nil
}

func LogAssessment(ctx context.Context, a risk.Assessment, userID uuid.UUID, vehicleID int64) {
	attrs := []any{
		"user_id", userID,
		"vehicle_id", vehicleID,
		"risk_score", a.Score,
		"risk_level", a.Level,
		"reasons", a.Reasons,
	}
	switch a.Level {
	case risk.LevelHigh:
		slog.ErrorContext(ctx, "high risk reservation", attrs...)
	case risk.LevelMedium:
		slog.WarnContext(ctx, "medium risk reservation", attrs...)
	case risk.LevelLow:
		slog.InfoContext(ctx, "low risk reservation", attrs...)
	case risk.LevelNone:
		slog.DebugContext(ctx, "reservation risk assessed", attrs...)
	}
}
