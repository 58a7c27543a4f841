package readstore

import (
	"context"
	"time"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservation(ctx context.Context, db dbq.DBTX, id int64) (dbq.Reservations, error)
	ListReservationsByUser(ctx context.Context, db dbq.DBTX, arg dbq.ListReservationsByUserParams) ([]dbq.Reservations, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      dbq.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db dbq.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id int64) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return toReservationView(row), nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, afterCreatedAt *time.Time, afterID int64, limit int32) ([]*queries.ReservationView, error) {
	params := dbq.ListReservationsByUserParams{
		UserID:         userID,
		Limit:          limit,
		AfterCreatedAt: pgconv.TimePtrToPgtype(afterCreatedAt),
		AfterID:        afterID,
	}

	rows, err := r.queries.ListReservationsByUser(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = toReservationView(row)
	}
	return result, nil
}

func toReservationView(row dbq.Reservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 row.ID,
		UserID:             row.UserID,
		VehicleID:          row.VehicleID,
		PickupDate:         pgconv.TimeFromPgtype(row.PickupDate),
		ReturnDate:         pgconv.TimeFromPgtype(row.ReturnDate),
		PickupLocation:     row.PickupLocation,
		ReturnLocation:     row.ReturnLocation,
		BasePrice:          row.BasePrice,
		Discount:           row.Discount,
		TotalPrice:         row.TotalPrice,
		DepositAmount:      row.DepositAmount,
		DepositStatus:      row.DepositStatus,
		TotalDays:          row.TotalDays,
		Status:             row.Status,
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

