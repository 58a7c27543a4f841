package repository

import (
	"context"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/idempotency"
)

type PaymentRequestQueries interface {
	GetPaymentRequest(ctx context.Context, db dbq.DBTX, key string) (dbq.PaymentRequests, error)
	InsertPaymentRequest(ctx context.Context, db dbq.DBTX, arg dbq.InsertPaymentRequestParams) (int64, error)
}

// PaymentRequestStore is the durable tier of the idempotency ledger. It runs outside
// any saga transaction so a rolled-back booking still leaves its outcome behind.
type PaymentRequestStore struct {
	queries PaymentRequestQueries
	db      dbq.DBTX
}

func NewPaymentRequestStore(queries PaymentRequestQueries, db dbq.DBTX) *PaymentRequestStore {
	return &PaymentRequestStore{
		queries: queries,
		db:      db,
	}
}

func (s *PaymentRequestStore) Find(ctx context.Context, key string) (*idempotency.Record, error) {
	row, err := s.queries.GetPaymentRequest(ctx, s.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read payment request", err)
	}

	return &idempotency.Record{
		Key:           row.IdempotencyKey,
		UserID:        row.UserID,
		Request:       row.RequestBody,
		Response:      row.ResponseBody,
		Success:       row.IsSuccessful,
		FailedStep:    row.FailedStep.String,
		ReservationID: pgconv.Int8PtrFromPgtype(row.ReservationID),
		TransactionID: row.TransactionID.String,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}

func (s *PaymentRequestStore) Insert(ctx context.Context, rec *idempotency.Record) (bool, error) {
	n, err := s.queries.InsertPaymentRequest(ctx, s.db, dbq.InsertPaymentRequestParams{
		IdempotencyKey: rec.Key,
		UserID:         rec.UserID,
		RequestBody:    rec.Request,
		ResponseBody:   rec.Response,
		IsSuccessful:   rec.Success,
		FailedStep:     pgconv.TextOrNull(rec.FailedStep),
		ReservationID:  pgconv.Int8PtrToPgtype(rec.ReservationID),
		TransactionID:  pgconv.TextOrNull(rec.TransactionID),
		CreatedAt:      pgconv.TimeToPgtype(rec.CreatedAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert payment request", err)
	}
	return n > 0, nil
}
