package repository

import (
	"context"
	"time"

	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/infra/repository/converter"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db dbq.DBTX, arg dbq.CreateReservationParams) (int64, error)
	GetReservationForUpdate(ctx context.Context, db dbq.DBTX, id int64) (dbq.Reservations, error)
	UpdateReservationStatus(ctx context.Context, db dbq.DBTX, arg dbq.UpdateReservationStatusParams) (int64, error)
	DeletePendingReservation(ctx context.Context, db dbq.DBTX, id int64) (int64, error)
	ExistsPaidReservation(ctx context.Context, db dbq.DBTX, arg dbq.ExistsPaidReservationParams) (bool, error)
	DeleteStaleHolds(ctx context.Context, db dbq.DBTX, before time.Time) ([]dbq.DeleteStaleHoldsRow, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      dbq.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db dbq.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx dbq.DBTX, res *reservation.Reservation) (int64, error) {
	params := converter.ReservationToInfra(res)

	id, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create reservation", err)
	}

	res.SetID(id)
	return id, nil
}

func (r *ReservationRepository) LockByID(ctx context.Context, tx dbq.DBTX, id int64) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx dbq.DBTX, res *reservation.Reservation, from reservation.Status) error {
	n, err := r.queries.UpdateReservationStatus(ctx, tx, dbq.UpdateReservationStatusParams{
		ID:                 res.ID(),
		From:               from.String(),
		To:                 res.Status().String(),
		CancellationReason: pgconv.TextOrNull(res.CancellationReason()),
		CancelledAt:        pgconv.TimePtrToPgtype(res.CancelledAt()),
		UpdatedAt:          pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation status changed concurrently", reservation.ErrInvalidTransition, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) DeletePending(ctx context.Context, tx dbq.DBTX, id int64) error {
	n, err := r.queries.DeletePendingReservation(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete pending reservation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("pending reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) ExistsPaid(ctx context.Context, tx dbq.DBTX, userID uuid.UUID, vehicleID int64, period reservation.RentalPeriod) (bool, error) {
	exists, err := r.queries.ExistsPaidReservation(ctx, tx, dbq.ExistsPaidReservationParams{
		UserID:     userID,
		VehicleID:  vehicleID,
		PickupDate: pgconv.TimeToPgtype(period.Pickup()),
		ReturnDate: pgconv.TimeToPgtype(period.Return()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check for a paid duplicate reservation", err)
	}
	return exists, nil
}

func (r *ReservationRepository) DeleteStaleHolds(ctx context.Context, tx dbq.DBTX, before time.Time) ([]shared.StaleHold, error) {
	rows, err := r.queries.DeleteStaleHolds(ctx, tx, before)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to delete stale holds", err)
	}

	holds := make([]shared.StaleHold, 0, len(rows))
	for _, row := range rows {
		holds = append(holds, shared.StaleHold{ReservationID: row.ID, VehicleID: row.VehicleID})
	}
	return holds, nil
}
