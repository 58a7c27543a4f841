//go:build unit

package throttle_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rentcar-backend/internal/infra/throttle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounter(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("keeps attempts ordered and prunes old ones", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		require.NoError(t, c.Add(ctx, "a@example.com", base.Add(2*time.Minute)))
		require.NoError(t, c.Add(ctx, "a@example.com", base))
		require.NoError(t, c.Add(ctx, "a@example.com", base.Add(time.Minute)))

		got, err := c.Recent(ctx, "a@example.com", base.Add(30*time.Second))

		require.NoError(t, err)
		assert.Equal(t, []time.Time{base.Add(time.Minute), base.Add(2 * time.Minute)}, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		require.NoError(t, c.Add(ctx, "a@example.com", base))

		got, err := c.Recent(ctx, "b@example.com", base.Add(-time.Hour))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("clear forgets the key", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		require.NoError(t, c.Add(ctx, "a@example.com", base))
		require.NoError(t, c.Clear(ctx, "a@example.com"))

		got, err := c.Recent(ctx, "a@example.com", base.Add(-time.Hour))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("stale keys are swept once the retention has passed", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		for i := range 1000 {
			require.NoError(t, c.Add(ctx, fmt.Sprintf("user%d@example.com", i), base))
		}
		require.Equal(t, 1000, c.Keys())

		require.NoError(t, c.Add(ctx, "late@example.com", base.Add(16*time.Minute)))

		assert.Equal(t, 1, c.Keys())
		got, err := c.Recent(ctx, "late@example.com", base)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("attempts inside the retention survive a sweep", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		require.NoError(t, c.Add(ctx, "a@example.com", base))
		require.NoError(t, c.Add(ctx, "b@example.com", base.Add(10*time.Minute)))

		require.NoError(t, c.Add(ctx, "c@example.com", base.Add(20*time.Minute)))

		assert.Equal(t, 2, c.Keys())
		got, err := c.Recent(ctx, "b@example.com", base)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{base.Add(10 * time.Minute)}, got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := throttle.NewMemoryCounter(15 * time.Minute)
		require.NoError(t, c.Add(ctx, "a@example.com", base))

		got, err := c.Recent(ctx, "a@example.com", base.Add(-time.Hour))
		require.NoError(t, err)
		got[0] = time.Time{}

		again, err := c.Recent(ctx, "a@example.com", base.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, again[0])
	})
}
