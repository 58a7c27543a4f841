package readstore

import (
	"context"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/queries"
)

type PaymentViewQueries interface {
	ListPaymentsByReservation(ctx context.Context, db dbq.DBTX, reservationID int64) ([]dbq.Payments, error)
}

type PaymentReadStore struct {
	queries PaymentViewQueries
	db      dbq.DBTX
}

func NewPaymentReadStore(queries PaymentViewQueries, db dbq.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) FindByReservationID(ctx context.Context, reservationID int64) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}

	result := make([]*queries.PaymentView, len(rows))
	for i, row := range rows {
		result[i] = &queries.PaymentView{
			ID:            row.ID,
			ReservationID: row.ReservationID,
			Amount:        row.Amount,
			PaymentType:   row.PaymentType,
			PaymentMethod: row.PaymentMethod,
			Status:        row.Status,
			TransactionID: row.TransactionID,
			IsSuccessful:  row.IsSuccessful,
			FailureReason: pgconv.StringPtrFromPgtype(row.FailureReason),
			PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return result, nil
}
