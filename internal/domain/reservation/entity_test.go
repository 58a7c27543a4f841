//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newPending(t *testing.T, mutate func(*builder.ReservationBuilder)) (*reservation.Reservation, error) {
	t.Helper()
	pickup := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	b := builder.NewReservationBuilder().WithPeriod(pickup, pickup.Add(50*time.Hour)).With(mutate)
	draft, err := b.BuildDraft(uuid.New())
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(now, reservation.VehicleSpec{ID: b.VehicleID, DepositAmount: 250}, draft)
}

func TestNewRentalPeriod(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*3600)
	pickup := time.Date(2025, 6, 10, 2, 0, 0, 0, istanbul)

	period, err := reservation.NewRentalPeriod(pickup, pickup.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, time.UTC, period.Pickup().Location())
	assert.Equal(t, time.UTC, period.Return().Location())
	assert.Equal(t, 23, period.Pickup().Hour())
	assert.True(t, pickup.Equal(period.Pickup()))
	assert.Equal(t, 24*time.Hour, period.Duration())
}

func TestNewReservation(t *testing.T) {
	t.Run("starts pending with a pending deposit", func(t *testing.T) {
		res, err := newPending(t, func(*builder.ReservationBuilder) {})
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.Equal(t, int64(7), res.VehicleID())
		assert.Equal(t, int64(1500), res.Price().Total())
		assert.Equal(t, int64(250), res.Deposit().Amount())
		assert.Equal(t, reservation.DepositPending, res.Deposit().Status())
		assert.Equal(t, 3, res.Period().Days())
		assert.Equal(t, 72, res.Period().Hours())
		assert.Equal(t, now, res.CreatedAt())
	})

	tests := []struct {
		name   string
		mutate func(*builder.ReservationBuilder)
		errIs  error
	}{
		{
			name: "return equals pickup",
			mutate: func(b *builder.ReservationBuilder) {
				b.ReturnDate = b.PickupDate
			},
			errIs: reservation.ErrInvalidPeriod,
		},
		{
			name:   "zero amount",
			mutate: func(b *builder.ReservationBuilder) { b.PaymentAmount = 0 },
			errIs:  reservation.ErrNonPositiveAmount,
		},
		{
			name:   "discount above amount",
			mutate: func(b *builder.ReservationBuilder) { b.Discount = 2000 },
			errIs:  reservation.ErrDiscountExceedsBase,
		},
		{
			name:   "negative discount",
			mutate: func(b *builder.ReservationBuilder) { b.Discount = -1 },
			errIs:  reservation.ErrNegativeDiscount,
		},
		{
			name:   "blank location",
			mutate: func(b *builder.ReservationBuilder) { b.PickupLocation = "  " },
			errIs:  reservation.ErrMissingLocation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newPending(t, tt.mutate)

			require.Nil(t, res)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    reservation.Status
		to      reservation.Status
		allowed bool
	}{
		{reservation.StatusPending, reservation.StatusConfirmed, true},
		{reservation.StatusPending, reservation.StatusCancelled, true},
		{reservation.StatusPending, reservation.StatusActive, false},
		{reservation.StatusConfirmed, reservation.StatusActive, true},
		{reservation.StatusConfirmed, reservation.StatusCompleted, true},
		{reservation.StatusConfirmed, reservation.StatusCancelled, true},
		{reservation.StatusConfirmed, reservation.StatusPending, false},
		{reservation.StatusActive, reservation.StatusCompleted, true},
		{reservation.StatusActive, reservation.StatusCancelled, false},
		{reservation.StatusCompleted, reservation.StatusActive, false},
		{reservation.StatusCancelled, reservation.StatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestLifecycle(t *testing.T) {
	res, err := newPending(t, func(*builder.ReservationBuilder) {})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, res.Confirm(later))
	assert.Equal(t, reservation.StatusConfirmed, res.Status())
	assert.Equal(t, later, res.UpdatedAt())

	require.NoError(t, res.Start(later))
	assert.ErrorIs(t, res.Cancel("too late", later), reservation.ErrInvalidTransition)
	assert.Nil(t, res.CancelledAt())

	require.NoError(t, res.Complete(later))
	assert.True(t, res.Status().IsTerminal())
	assert.ErrorIs(t, res.Confirm(later), reservation.ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	res, err := newPending(t, func(*builder.ReservationBuilder) {})
	require.NoError(t, err)
	require.True(t, res.Status().IsOpen())

	require.NoError(t, res.Cancel("  changed plans  ", now))

	assert.Equal(t, reservation.StatusCancelled, res.Status())
	assert.Equal(t, "changed plans", res.CancellationReason())
	require.NotNil(t, res.CancelledAt())
	assert.Equal(t, now, *res.CancelledAt())
	assert.False(t, res.Status().IsOpen())
}

func TestNewStatus(t *testing.T) {
	s, err := reservation.NewStatus("active")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusActive, s)

	_, err = reservation.NewStatus("archived")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}
