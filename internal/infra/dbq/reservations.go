package dbq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, vehicle_id, pickup_date, return_date, pickup_location, return_location,
	base_price, discount, total_price, deposit_amount, deposit_status, total_days, total_hours,
	status, cancellation_reason, cancelled_at, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (Reservations, error) {
	var r Reservations
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.VehicleID,
		&r.PickupDate,
		&r.ReturnDate,
		&r.PickupLocation,
		&r.ReturnLocation,
		&r.BasePrice,
		&r.Discount,
		&r.TotalPrice,
		&r.DepositAmount,
		&r.DepositStatus,
		&r.TotalDays,
		&r.TotalHours,
		&r.Status,
		&r.CancellationReason,
		&r.CancelledAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const createReservation = `
INSERT INTO reservations (
    user_id, vehicle_id, pickup_date, return_date, pickup_location, return_location,
    base_price, discount, total_price, deposit_amount, deposit_status, total_days, total_hours,
    status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
RETURNING id
`

type CreateReservationParams struct {
	UserID         uuid.UUID
	VehicleID      int64
	PickupDate     pgtype.Timestamptz
	ReturnDate     pgtype.Timestamptz
	PickupLocation string
	ReturnLocation string
	BasePrice      int64
	Discount       int64
	TotalPrice     int64
	DepositAmount  int64
	DepositStatus  string
	TotalDays      int32
	TotalHours     int32
	Status         string
	CreatedAt      pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, createReservation,
		arg.UserID,
		arg.VehicleID,
		arg.PickupDate,
		arg.ReturnDate,
		arg.PickupLocation,
		arg.ReturnLocation,
		arg.BasePrice,
		arg.Discount,
		arg.TotalPrice,
		arg.DepositAmount,
		arg.DepositStatus,
		arg.TotalDays,
		arg.TotalHours,
		arg.Status,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const getReservation = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id int64) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservation, id))
}

const getReservationForUpdate = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id int64) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

// Keyset page. An invalid AfterCreatedAt selects the first page.
const listReservationsByUser = `SELECT ` + reservationColumns + `
FROM reservations
WHERE user_id = $1
  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3, $4))
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListReservationsByUserParams struct {
	UserID         uuid.UUID
	Limit          int32
	AfterCreatedAt pgtype.Timestamptz
	AfterID        int64
}

func (q *Queries) ListReservationsByUser(ctx context.Context, db DBTX, arg ListReservationsByUserParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsByUser, arg.UserID, arg.Limit, arg.AfterCreatedAt, arg.AfterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservations
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateReservationStatus = `
UPDATE reservations
SET status = $3,
    cancellation_reason = COALESCE($4, cancellation_reason),
    cancelled_at = COALESCE($5, cancelled_at),
    updated_at = $6
WHERE id = $1 AND status = $2
`

type UpdateReservationStatusParams struct {
	ID                 int64
	From               string
	To                 string
	CancellationReason pgtype.Text
	CancelledAt        pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

// UpdateReservationStatus is a compare-and-set on the current status.
func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationStatus,
		arg.ID,
		arg.From,
		arg.To,
		arg.CancellationReason,
		arg.CancelledAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deletePendingReservation = `DELETE FROM reservations WHERE id = $1 AND status = 'pending'`

func (q *Queries) DeletePendingReservation(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, deletePendingReservation, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const existsPaidReservation = `
SELECT EXISTS (
    SELECT 1
    FROM reservations r
    JOIN payments p ON p.reservation_id = r.id
    WHERE r.user_id = $1
      AND r.vehicle_id = $2
      AND r.pickup_date = $3
      AND r.return_date = $4
      AND r.status = 'confirmed'
      AND p.payment_type = 'reservation'
      AND p.is_successful
)
`

type ExistsPaidReservationParams struct {
	UserID     uuid.UUID
	VehicleID  int64
	PickupDate pgtype.Timestamptz
	ReturnDate pgtype.Timestamptz
}

func (q *Queries) ExistsPaidReservation(ctx context.Context, db DBTX, arg ExistsPaidReservationParams) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, existsPaidReservation, arg.UserID, arg.VehicleID, arg.PickupDate, arg.ReturnDate).Scan(&exists)
	return exists, err
}

const reservationStatsByUser = `
SELECT
    COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')) AS open_count,
    COUNT(*) AS total_count,
    COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_count
FROM reservations
WHERE user_id = $1
`

type ReservationStatsByUserRow struct {
	OpenCount      int64
	TotalCount     int64
	CancelledCount int64
}

func (q *Queries) ReservationStatsByUser(ctx context.Context, db DBTX, userID uuid.UUID) (ReservationStatsByUserRow, error) {
	var r ReservationStatsByUserRow
	err := db.QueryRow(ctx, reservationStatsByUser, userID).Scan(&r.OpenCount, &r.TotalCount, &r.CancelledCount)
	return r, err
}

// Holds whose charge may have been captured keep a ledger row with a transaction id; those stay put.
const deleteStaleHolds = `
DELETE FROM reservations r
WHERE r.status = 'pending'
  AND r.created_at < $1
  AND NOT EXISTS (SELECT 1 FROM payments p WHERE p.reservation_id = r.id)
  AND NOT EXISTS (
      SELECT 1 FROM payment_requests pr
      WHERE pr.reservation_id = r.id AND pr.transaction_id IS NOT NULL
  )
RETURNING r.id, r.vehicle_id
`

type DeleteStaleHoldsRow struct {
	ID        int64
	VehicleID int64
}

func (q *Queries) DeleteStaleHolds(ctx context.Context, db DBTX, before time.Time) ([]DeleteStaleHoldsRow, error) {
	rows, err := db.Query(ctx, deleteStaleHolds, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DeleteStaleHoldsRow
	for rows.Next() {
		var i DeleteStaleHoldsRow
		if err := rows.Scan(&i.ID, &i.VehicleID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
