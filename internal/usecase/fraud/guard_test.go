//go:build unit

package fraud_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/fraud"
	"rentcar-backend/internal/usecase/shared"
	commandsmock "rentcar-backend/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubSignals struct {
	exists      bool
	existsErr   error
	recent      int
	since       time.Time
	snapshot    *shared.RiskSignalsSnapshot
	snapshotErr error
}

func (s *stubSignals) UserExistsByEmailOrPhone(context.Context, string, string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubSignals) CountUsersCreatedSince(_ context.Context, since time.Time) (int, error) {
	s.since = since
	return s.recent, nil
}

func (s *stubSignals) RiskSignals(context.Context, uuid.UUID, int64) (*shared.RiskSignalsSnapshot, error) {
	return s.snapshot, s.snapshotErr
}

func TestRegistrationGuard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("allows a fresh identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alerts := commandsmock.NewMockFraudAlertWriter(ctrl)
		alerts.EXPECT().WriteAlert(gomock.Any(), gomock.Any()).Times(0)
		signals := &stubSignals{recent: 10}
		g := fraud.NewRegistrationGuard(signals, alerts, clock.NewMockClock(now), time.Hour, 10)

		require.NoError(t, g.Check(ctx, "new@example.com", "+905551112233"))
		assert.Equal(t, now.Add(-time.Hour), signals.since)
	})

	t.Run("blocks an existing identity and raises an alert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alerts := commandsmock.NewMockFraudAlertWriter(ctrl)
		alerts.EXPECT().WriteAlert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a shared.FraudAlert) error {
				assert.Equal(t, shared.FraudAlertRegistration, a.Type)
				assert.Equal(t, "taken@example.com", a.Email)
				return nil
			})
		g := fraud.NewRegistrationGuard(&stubSignals{exists: true}, alerts, clock.NewMockClock(now), time.Hour, 10)

		err := g.Check(ctx, " Taken@Example.com", "+905551112233")

		assert.ErrorIs(t, err, fraud.ErrRegistrationBlocked)
	})

	t.Run("blocks a burst even when the alert write fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alerts := commandsmock.NewMockFraudAlertWriter(ctrl)
		alerts.EXPECT().WriteAlert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		g := fraud.NewRegistrationGuard(&stubSignals{recent: 11}, alerts, clock.NewMockClock(now), time.Hour, 10)

		err := g.Check(ctx, "new@example.com", "+905551112233")

		require.ErrorIs(t, err, fraud.ErrRegistrationBlocked)
		assert.Contains(t, err.Error(), "rate limit")
	})

	t.Run("lookup failure is not a block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alerts := commandsmock.NewMockFraudAlertWriter(ctrl)
		boom := errors.New("db down")
		g := fraud.NewRegistrationGuard(&stubSignals{existsErr: boom}, alerts, clock.NewMockClock(now), time.Hour, 10)

		err := g.Check(ctx, "new@example.com", "+905551112233")

		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, fraud.ErrRegistrationBlocked)
	})
}

func TestRiskAssessor(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	pickup := time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)

	t.Run("scores the snapshot", func(t *testing.T) {
		signals := &stubSignals{snapshot: &shared.RiskSignalsSnapshot{
			AccountCreatedAt:  now.Add(-time.Hour),
			VehicleDailyPrice: 2000,
			OpenReservations:  4,
		}}
		a := fraud.NewRiskAssessor(signals, clock.NewMockClock(now), 1000)

		got, err := a.Assess(context.Background(), uuid.New(), 7, pickup, pickup.Add(30*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 100, got.Score)
		assert.Len(t, got.Reasons, 4)
	})

	t.Run("signal failure is returned", func(t *testing.T) {
		boom := errors.New("replica down")
		a := fraud.NewRiskAssessor(&stubSignals{snapshotErr: boom}, clock.NewMockClock(now), 1000)

		_, err := a.Assess(context.Background(), uuid.New(), 7, pickup, pickup.Add(time.Hour))

		assert.ErrorIs(t, err, boom)
	})
}
