//go:build e2e

package redisstore_test

import (
	"testing"
	"time"

	"rentcar-backend/internal/infra/cache"
	"rentcar-backend/internal/infra/throttle"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/ptr"
	"rentcar-backend/internal/usecase/fraud"
	"rentcar-backend/internal/usecase/idempotency"
	"rentcar-backend/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type redisStoreSuite struct {
	e2e.SharedSuite
}

func TestRedisStoreSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(redisStoreSuite))
}

func (s *redisStoreSuite) TestAttemptCounter() {
	window := 15 * time.Minute
	base := time.UnixMilli(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).UnixMilli())

	s.Run("recent returns ascending timestamps and keeps duplicates", func() {
		t := s.T()
		ctx := t.Context()
		counter := throttle.NewRedisCounter(s.Redis, window)

		for _, at := range []time.Time{base.Add(2 * time.Minute), base, base.Add(time.Minute), base} {
			require.NoError(t, counter.Add(ctx, "a@example.com", at))
		}

		got, err := counter.Recent(ctx, "a@example.com", base.Add(-time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{base, base, base.Add(time.Minute), base.Add(2 * time.Minute)}, got)
	})

	s.Run("entries before the cutoff are pruned", func() {
		t := s.T()
		ctx := t.Context()
		counter := throttle.NewRedisCounter(s.Redis, window)

		for _, at := range []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute)} {
			require.NoError(t, counter.Add(ctx, "b@example.com", at))
		}

		got, err := counter.Recent(ctx, "b@example.com", base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{base.Add(time.Minute), base.Add(2 * time.Minute)}, got)

		size, err := s.Redis.ZCard(ctx, "login_attempts:b@example.com").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(2), size)
	})

	s.Run("keys expire after the window and clear removes them", func() {
		t := s.T()
		ctx := t.Context()
		counter := throttle.NewRedisCounter(s.Redis, window)

		require.NoError(t, counter.Add(ctx, "c@example.com", base))

		ttl, err := s.Redis.TTL(ctx, "login_attempts:c@example.com").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, window)

		require.NoError(t, counter.Clear(ctx, "c@example.com"))
		got, err := counter.Recent(ctx, "c@example.com", base.Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	s.Run("throttle blocks after max failures and resets on success", func() {
		t := s.T()
		ctx := t.Context()
		clk := clock.NewMockClock(base)
		lt := fraud.NewLoginThrottle(throttle.NewRedisCounter(s.Redis, window), clk, window, 5)

		for range 5 {
			require.NoError(t, lt.Check(ctx, "D@Example.com"))
			require.NoError(t, lt.RecordFailure(ctx, "D@Example.com"))
			clk.Add(time.Second)
		}

		err := lt.Check(ctx, "d@example.com")
		var throttled *fraud.ThrottleError
		require.ErrorAs(t, err, &throttled)
		assert.Equal(t, window-5*time.Second, throttled.RetryAfter)

		require.NoError(t, lt.RecordSuccess(ctx, "d@example.com"))
		assert.NoError(t, lt.Check(ctx, "d@example.com"))
	})
}

func (s *redisStoreSuite) TestLedgerCache() {
	s.Run("miss returns nil without error", func() {
		t := s.T()
		got, err := cache.NewLedgerCache(s.Redis).Get(t.Context(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	s.Run("set then get round trips the record", func() {
		t := s.T()
		ctx := t.Context()
		store := cache.NewLedgerCache(s.Redis)

		rec := &idempotency.Record{
			Key:           "round-trip",
			UserID:        uuid.New(),
			Request:       []byte(`{"vehicleId":7}`),
			Response:      []byte(`{"success":true}`),
			Success:       true,
			ReservationID: ptr.Of(int64(42)),
			TransactionID: "txn-1",
			CreatedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(t, store.Set(ctx, rec, time.Hour))

		got, err := store.Get(ctx, "round-trip")
		require.NoError(t, err)
		assert.Equal(t, rec, got)

		ttl, err := s.Redis.TTL(ctx, "idempotency:round-trip").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 59*time.Minute)
	})
}
