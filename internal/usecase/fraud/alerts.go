package fraud

import (
	"context"

	"rentcar-backend/internal/usecase/shared"
)

// UoWAlertWriter persists fraud alerts in their own short transaction.
type UoWAlertWriter struct {
	uow shared.UnitOfWork
}

func NewUoWAlertWriter(uow shared.UnitOfWork) *UoWAlertWriter {
	return &UoWAlertWriter{uow: uow}
}

func (w *UoWAlertWriter) WriteAlert(ctx context.Context, alert shared.FraudAlert) error {
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.FraudAlerts().Create(ctx, tx.DB(), alert)
	})
}
