//go:build unit

package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/usecase/idempotency"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRequestQueries struct {
	mock.Mock
}

func (m *MockPaymentRequestQueries) GetPaymentRequest(ctx context.Context, db dbq.DBTX, key string) (dbq.PaymentRequests, error) {
	args := m.Called(ctx, db, key)
	return args.Get(0).(dbq.PaymentRequests), args.Error(1)
}

func (m *MockPaymentRequestQueries) InsertPaymentRequest(ctx context.Context, db dbq.DBTX, arg dbq.InsertPaymentRequestParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestPaymentRequestFind(t *testing.T) {
	pool := new(mockDB)

	t.Run("missing key is not an error", func(t *testing.T) {
		mockQueries := new(MockPaymentRequestQueries)
		mockQueries.On("GetPaymentRequest", mock.Anything, pool, "k1").Return(dbq.PaymentRequests{}, pgx.ErrNoRows)

		rec, err := NewPaymentRequestStore(mockQueries, pool).Find(context.Background(), "k1")

		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("stored row is mapped", func(t *testing.T) {
		userID := uuid.New()
		created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		mockQueries := new(MockPaymentRequestQueries)
		mockQueries.On("GetPaymentRequest", mock.Anything, pool, "k1").Return(dbq.PaymentRequests{
			IdempotencyKey: "k1",
			UserID:         userID,
			RequestBody:    json.RawMessage(`{}`),
			ResponseBody:   json.RawMessage(`{"success":false}`),
			FailedStep:     pgtype.Text{String: "Payment processing", Valid: true},
			ReservationID:  pgtype.Int8{Int64: 42, Valid: true},
			CreatedAt:      pgtype.Timestamptz{Time: created, Valid: true},
		}, nil)

		rec, err := NewPaymentRequestStore(mockQueries, pool).Find(context.Background(), "k1")

		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, userID, rec.UserID)
		assert.False(t, rec.Success)
		assert.Equal(t, "Payment processing", rec.FailedStep)
		require.NotNil(t, rec.ReservationID)
		assert.Equal(t, int64(42), *rec.ReservationID)
		assert.Empty(t, rec.TransactionID)
		assert.True(t, rec.CreatedAt.Equal(created))
	})
}

func TestPaymentRequestInsert(t *testing.T) {
	pool := new(mockDB)
	rec := &idempotency.Record{Key: "k1", UserID: uuid.New(), Success: true, TransactionID: "MOCK-1"}

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "first writer", affected: 1, want: true},
		{name: "key already recorded", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockPaymentRequestQueries)
			mockQueries.On("InsertPaymentRequest", mock.Anything, pool, mock.MatchedBy(func(p dbq.InsertPaymentRequestParams) bool {
				return p.IdempotencyKey == "k1" && p.TransactionID.String == "MOCK-1" && !p.FailedStep.Valid && !p.ReservationID.Valid
			})).Return(tt.affected, nil)

			inserted, err := NewPaymentRequestStore(mockQueries, pool).Insert(context.Background(), rec)

			require.NoError(t, err)
			assert.Equal(t, tt.want, inserted)
		})
	}
}
