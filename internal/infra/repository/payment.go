package repository

import (
	"context"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/infra/repository/converter"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/shared"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db dbq.DBTX, arg dbq.CreatePaymentParams) (int64, error)
	GetSuccessfulCharge(ctx context.Context, db dbq.DBTX, reservationID int64) (dbq.Payments, error)
	GetPaymentByTransactionIDForUpdate(ctx context.Context, db dbq.DBTX, transactionID string) (dbq.Payments, error)
	UpdatePaymentOutcome(ctx context.Context, db dbq.DBTX, arg dbq.UpdatePaymentOutcomeParams) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      dbq.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db dbq.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, tx dbq.DBTX, p *payment.Payment) (int64, error) {
	id, err := r.queries.CreatePayment(ctx, tx, converter.PaymentToInfra(p))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

func (r *PaymentRepository) SuccessfulCharge(ctx context.Context, tx dbq.DBTX, reservationID int64) (*payment.Payment, error) {
	row, err := r.queries.GetSuccessfulCharge(ctx, tx, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find successful charge", err)
	}
	return converter.PaymentToDomain(row), nil
}

func (r *PaymentRepository) LockByTransactionID(ctx context.Context, tx dbq.DBTX, transactionID string) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByTransactionIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment by transaction id", err)
	}
	return converter.PaymentToDomain(row), nil
}

func (r *PaymentRepository) UpdateOutcome(ctx context.Context, tx dbq.DBTX, id int64, outcome shared.PaymentOutcome) error {
	n, err := r.queries.UpdatePaymentOutcome(ctx, tx, dbq.UpdatePaymentOutcomeParams{
		ID:            id,
		IsSuccessful:  outcome.IsSuccessful,
		Status:        string(outcome.Status),
		FailureReason: pgconv.TextOrNull(outcome.FailureReason),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update payment outcome", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}
