package dbq

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, reservation_id, amount, payment_type, payment_method, status, transaction_id,
	is_successful, failure_reason, paid_at, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (Payments, error) {
	var p Payments
	err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.Amount,
		&p.PaymentType,
		&p.PaymentMethod,
		&p.Status,
		&p.TransactionID,
		&p.IsSuccessful,
		&p.FailureReason,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const createPayment = `
INSERT INTO payments (
    reservation_id, amount, payment_type, payment_method, status, transaction_id,
    is_successful, failure_reason, paid_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING id
`

type CreatePaymentParams struct {
	ReservationID int64
	Amount        int64
	PaymentType   string
	PaymentMethod string
	Status        string
	TransactionID string
	IsSuccessful  bool
	FailureReason pgtype.Text
	PaidAt        pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, createPayment,
		arg.ReservationID,
		arg.Amount,
		arg.PaymentType,
		arg.PaymentMethod,
		arg.Status,
		arg.TransactionID,
		arg.IsSuccessful,
		arg.FailureReason,
		arg.PaidAt,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const listPaymentsByReservation = `SELECT ` + paymentColumns + `
FROM payments
WHERE reservation_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListPaymentsByReservation(ctx context.Context, db DBTX, reservationID int64) ([]Payments, error) {
	rows, err := db.Query(ctx, listPaymentsByReservation, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payments
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSuccessfulCharge = `SELECT ` + paymentColumns + `
FROM payments
WHERE reservation_id = $1 AND payment_type = 'reservation' AND is_successful
`

func (q *Queries) GetSuccessfulCharge(ctx context.Context, db DBTX, reservationID int64) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getSuccessfulCharge, reservationID))
}

// Refund rows reuse the charge's transaction id, so the original charge is preferred.
const getPaymentByTransactionID = `SELECT ` + paymentColumns + `
FROM payments
WHERE transaction_id = $1
ORDER BY (payment_type = 'refund'), id
LIMIT 1
FOR UPDATE
`

func (q *Queries) GetPaymentByTransactionIDForUpdate(ctx context.Context, db DBTX, transactionID string) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByTransactionID, transactionID))
}

const updatePaymentOutcome = `
UPDATE payments
SET is_successful = $2,
    status = $3,
    failure_reason = $4,
    updated_at = now()
WHERE id = $1
`

type UpdatePaymentOutcomeParams struct {
	ID            int64
	IsSuccessful  bool
	Status        string
	FailureReason pgtype.Text
}

func (q *Queries) UpdatePaymentOutcome(ctx context.Context, db DBTX, arg UpdatePaymentOutcomeParams) (int64, error) {
	tag, err := db.Exec(ctx, updatePaymentOutcome, arg.ID, arg.IsSuccessful, arg.Status, arg.FailureReason)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
