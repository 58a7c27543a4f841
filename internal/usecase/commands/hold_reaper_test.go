//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/shared"
	sharedmock "rentcar-backend/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reaperFixture struct {
	uow          *sharedmock.MockUnitOfWork
	vehicles     *sharedmock.MockVehicleRepository
	reservations *sharedmock.MockReservationRepository
	clock        *clock.MockClock
}

func newReaperFixture(t *testing.T) reaperFixture {
	ctrl := gomock.NewController(t)
	f := reaperFixture{
		uow:          sharedmock.NewMockUnitOfWork(ctrl),
		vehicles:     sharedmock.NewMockVehicleRepository(ctrl),
		reservations: sharedmock.NewMockReservationRepository(ctrl),
		clock:        clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	tx := sharedmock.NewMockTx(ctrl)
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).AnyTimes()
	tx.EXPECT().DB().Return(nil).AnyTimes()
	tx.EXPECT().Vehicles().Return(f.vehicles).AnyTimes()
	tx.EXPECT().Reservations().Return(f.reservations).AnyTimes()
	return f
}

func TestHoldReaperReapOnce(t *testing.T) {
	t.Run("releases stale holds older than ttl", func(t *testing.T) {
		f := newReaperFixture(t)
		wantBefore := f.clock.Now().Add(-15 * time.Minute)
		f.reservations.EXPECT().DeleteStaleHolds(gomock.Any(), gomock.Any(), wantBefore).
			Return([]shared.StaleHold{{ReservationID: 1, VehicleID: 7}, {ReservationID: 2, VehicleID: 8}}, nil)
		f.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), int64(7),
			[]vehicle.Status{vehicle.StatusReserved}, vehicle.StatusAvailable).Return(nil)
		f.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), int64(8),
			[]vehicle.Status{vehicle.StatusReserved}, vehicle.StatusAvailable).
			Return(infra.WrapRepoErr("vehicle status", nil, infra.KindConflict))

		n, err := commands.NewHoldReaper(f.uow, f.clock, 15*time.Minute, time.Minute).ReapOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("nothing to reap", func(t *testing.T) {
		f := newReaperFixture(t)
		f.reservations.EXPECT().DeleteStaleHolds(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		n, err := commands.NewHoldReaper(f.uow, f.clock, 15*time.Minute, time.Minute).ReapOnce(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("transition failure aborts the pass", func(t *testing.T) {
		f := newReaperFixture(t)
		boom := errors.New("connection reset")
		f.reservations.EXPECT().DeleteStaleHolds(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]shared.StaleHold{{ReservationID: 1, VehicleID: 7}}, nil)
		f.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), int64(7), gomock.Any(), gomock.Any()).Return(boom)

		_, err := commands.NewHoldReaper(f.uow, f.clock, 15*time.Minute, time.Minute).ReapOnce(context.Background())

		assert.ErrorIs(t, err, boom)
	})
}

func TestHoldReaperStartStop(t *testing.T) {
	f := newReaperFixture(t)
	reaped := make(chan struct{}, 1)
	f.reservations.EXPECT().DeleteStaleHolds(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, dbq.DBTX, time.Time) ([]shared.StaleHold, error) {
			select {
			case reaped <- struct{}{}:
			default:
			}
			return nil, nil
		}).MinTimes(1)

	r := commands.NewHoldReaper(f.uow, f.clock, time.Minute, 5*time.Millisecond)
	r.Start()

	select {
	case <-reaped:
	case <-time.After(time.Second):
		t.Fatal("reaper did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	require.NotPanics(t, func() {
		require.NoError(t, r.Stop(ctx))
	})
}

func TestHoldReaperStopWithoutStart(t *testing.T) {
	f := newReaperFixture(t)
	r := commands.NewHoldReaper(f.uow, f.clock, time.Minute, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	require.NoError(t, r.Stop(ctx))
}
