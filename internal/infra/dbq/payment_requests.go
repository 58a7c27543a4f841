package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getPaymentRequest = `
SELECT idempotency_key, user_id, request_body, response_body, is_successful,
       failed_step, reservation_id, transaction_id, created_at
FROM payment_requests
WHERE idempotency_key = $1
`

func (q *Queries) GetPaymentRequest(ctx context.Context, db DBTX, key string) (PaymentRequests, error) {
	var r PaymentRequests
	err := db.QueryRow(ctx, getPaymentRequest, key).Scan(
		&r.IdempotencyKey,
		&r.UserID,
		&r.RequestBody,
		&r.ResponseBody,
		&r.IsSuccessful,
		&r.FailedStep,
		&r.ReservationID,
		&r.TransactionID,
		&r.CreatedAt,
	)
	return r, err
}

const insertPaymentRequest = `
INSERT INTO payment_requests (
    idempotency_key, user_id, request_body, response_body, is_successful,
    failed_step, reservation_id, transaction_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (idempotency_key) DO NOTHING
`

type InsertPaymentRequestParams struct {
	IdempotencyKey string
	UserID         uuid.UUID
	RequestBody    []byte
	ResponseBody   []byte
	IsSuccessful   bool
	FailedStep     pgtype.Text
	ReservationID  pgtype.Int8
	TransactionID  pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

// InsertPaymentRequest is write-once. Zero rows means the key was already taken.
func (q *Queries) InsertPaymentRequest(ctx context.Context, db DBTX, arg InsertPaymentRequestParams) (int64, error) {
	tag, err := db.Exec(ctx, insertPaymentRequest,
		arg.IdempotencyKey,
		arg.UserID,
		arg.RequestBody,
		arg.ResponseBody,
		arg.IsSuccessful,
		arg.FailedStep,
		arg.ReservationID,
		arg.TransactionID,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
