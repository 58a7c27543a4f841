package repository

import (
	"context"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/shared"
)

type FraudAlertWriteQueries interface {
	CreateFraudAlert(ctx context.Context, db dbq.DBTX, arg dbq.CreateFraudAlertParams) (int64, error)
}

type FraudAlertRepository struct {
	queries FraudAlertWriteQueries
}

func NewFraudAlertRepository(queries FraudAlertWriteQueries) *FraudAlertRepository {
	return &FraudAlertRepository{queries: queries}
}

func (r *FraudAlertRepository) Create(ctx context.Context, tx dbq.DBTX, alert shared.FraudAlert) error {
	score := alert.RiskScore
	if score < 0 {
		score = 0
	}
	_, err := r.queries.CreateFraudAlert(ctx, tx, dbq.CreateFraudAlertParams{
		AlertType: string(alert.Type),
		Email:     pgconv.TextOrNull(alert.Email),
		UserID:    pgconv.UUIDPtrToPgtype(alert.UserID),
		RiskScore: int32(score), // #nosec G115 -- scores are small and non-negative
		Reason:    alert.Reason,
		CreatedAt: pgconv.TimeToPgtype(alert.CreatedAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create fraud alert", err)
	}
	return nil
}
