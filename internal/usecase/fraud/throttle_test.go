//go:build unit

package fraud_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentcar-backend/internal/infra/throttle"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/fraud"
	fraudmock "rentcar-backend/tests/mock/fraud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoginThrottle(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("blocks after max failures within the window", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		th := fraud.NewLoginThrottle(throttle.NewMemoryCounter(15 * time.Minute), clk, 15*time.Minute, 3)

		for i := 0; i < 3; i++ {
			require.NoError(t, th.Check(ctx, "driver@example.com"))
			require.NoError(t, th.RecordFailure(ctx, "driver@example.com"))
			clk.Add(time.Minute)
		}

		err := th.Check(ctx, " Driver@Example.com ")

		require.ErrorIs(t, err, fraud.ErrTooManyAttempts)
		var te *fraud.ThrottleError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, 12*time.Minute, te.RetryAfter)
	})

	t.Run("window slides past old failures", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		th := fraud.NewLoginThrottle(throttle.NewMemoryCounter(15 * time.Minute), clk, 15*time.Minute, 2)
		require.NoError(t, th.RecordFailure(ctx, "driver@example.com"))
		require.NoError(t, th.RecordFailure(ctx, "driver@example.com"))
		require.Error(t, th.Check(ctx, "driver@example.com"))

		clk.Add(16 * time.Minute)

		assert.NoError(t, th.Check(ctx, "driver@example.com"))
	})

	t.Run("success resets the count", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		th := fraud.NewLoginThrottle(throttle.NewMemoryCounter(15 * time.Minute), clk, 15*time.Minute, 2)
		require.NoError(t, th.RecordFailure(ctx, "driver@example.com"))
		require.NoError(t, th.RecordFailure(ctx, "driver@example.com"))

		require.NoError(t, th.RecordSuccess(ctx, "driver@example.com"))

		assert.NoError(t, th.Check(ctx, "driver@example.com"))
	})

	t.Run("fails open when the store is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		counter := fraudmock.NewMockAttemptCounter(ctrl)
		counter.EXPECT().Recent(gomock.Any(), "driver@example.com", gomock.Any()).Return(nil, errors.New("redis down"))
		counter.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		th := fraud.NewLoginThrottle(counter, clock.NewMockClock(start), 15*time.Minute, 1)

		assert.NoError(t, th.Check(ctx, "driver@example.com"))
		assert.Error(t, th.RecordFailure(ctx, "driver@example.com"))
	})
}
