//go:build unit

package risk_test

import (
	"testing"
	"time"

	"rentcar-backend/internal/domain/risk"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func baseFacts() risk.Facts {
	pickup := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	return risk.Facts{
		Pickup:            pickup,
		Return:            pickup.Add(72 * time.Hour),
		AccountCreatedAt:  now.AddDate(-1, 0, 0),
		VehicleDailyPrice: 500,
	}
}

func TestScore(t *testing.T) {
	policy := risk.Policy{Now: now, ExpensiveDailyPrice: 1000}

	tests := []struct {
		name        string
		mutate      func(*risk.Facts)
		wantScore   int
		wantLevel   risk.Level
		wantReasons int
	}{
		{
			name:        "ordinary booking",
			mutate:      func(*risk.Facts) {},
			wantScore:   0,
			wantLevel:   risk.LevelNone,
			wantReasons: 0,
		},
		{
			name:        "short rental",
			mutate:      func(f *risk.Facts) { f.Return = f.Pickup.Add(30 * time.Minute) },
			wantScore:   30,
			wantLevel:   risk.LevelLow,
			wantReasons: 1,
		},
		{
			name:        "exactly one hour is not short",
			mutate:      func(f *risk.Facts) { f.Return = f.Pickup.Add(time.Hour) },
			wantScore:   0,
			wantLevel:   risk.LevelNone,
			wantReasons: 0,
		},
		{
			name:        "long rental",
			mutate:      func(f *risk.Facts) { f.Return = f.Pickup.AddDate(0, 0, 91) },
			wantScore:   20,
			wantLevel:   risk.LevelLow,
			wantReasons: 1,
		},
		{
			name: "night pickup",
			mutate: func(f *risk.Facts) {
				f.Pickup = time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
				f.Return = f.Pickup.Add(48 * time.Hour)
			},
			wantScore:   15,
			wantLevel:   risk.LevelLow,
			wantReasons: 1,
		},
		{
			name: "night pickup is judged in UTC",
			mutate: func(f *risk.Facts) {
				// 23:30 at -03:00 is 02:30 UTC
				f.Pickup = time.Date(2025, 6, 9, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
				f.Return = f.Pickup.Add(48 * time.Hour)
			},
			wantScore:   15,
			wantLevel:   risk.LevelLow,
			wantReasons: 1,
		},
		{
			name: "local 02:00 east of UTC is not a night pickup",
			mutate: func(f *risk.Facts) {
				// 02:00 at +03:00 is 23:00 UTC
				f.Pickup = time.Date(2025, 6, 10, 2, 0, 0, 0, time.FixedZone("TRT", 3*3600))
				f.Return = f.Pickup.Add(48 * time.Hour)
			},
			wantScore:   0,
			wantLevel:   risk.LevelNone,
			wantReasons: 0,
		},
		{
			name: "new account on an expensive vehicle",
			mutate: func(f *risk.Facts) {
				f.AccountCreatedAt = now.Add(-48 * time.Hour)
				f.VehicleDailyPrice = 1500
			},
			wantScore:   25,
			wantLevel:   risk.LevelLow,
			wantReasons: 1,
		},
		{
			name:        "new account on a cheap vehicle",
			mutate:      func(f *risk.Facts) { f.AccountCreatedAt = now.Add(-48 * time.Hour) },
			wantScore:   0,
			wantLevel:   risk.LevelNone,
			wantReasons: 0,
		},
		{
			name: "many open bookings with frequent cancellations",
			mutate: func(f *risk.Facts) {
				f.OpenReservations = 4
				f.TotalReservations = 6
				f.CancelledReservations = 4
			},
			wantScore:   50,
			wantLevel:   risk.LevelMedium,
			wantReasons: 2,
		},
		{
			name: "cancellations below sample size are ignored",
			mutate: func(f *risk.Facts) {
				f.TotalReservations = 2
				f.CancelledReservations = 2
			},
			wantScore:   0,
			wantLevel:   risk.LevelNone,
			wantReasons: 0,
		},
		{
			name: "short night rental on a new account stays just below high",
			mutate: func(f *risk.Facts) {
				f.Pickup = time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
				f.Return = f.Pickup.Add(20 * time.Minute)
				f.AccountCreatedAt = now.Add(-time.Hour)
				f.VehicleDailyPrice = 2000
			},
			wantScore:   70,
			wantLevel:   risk.LevelMedium,
			wantReasons: 3,
		},
		{
			name: "everything at once",
			mutate: func(f *risk.Facts) {
				f.Pickup = time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
				f.Return = f.Pickup.Add(20 * time.Minute)
				f.AccountCreatedAt = now.Add(-time.Hour)
				f.VehicleDailyPrice = 2000
				f.OpenReservations = 5
				f.TotalReservations = 10
				f.CancelledReservations = 8
			},
			wantScore:   120,
			wantLevel:   risk.LevelHigh,
			wantReasons: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := baseFacts()
			tt.mutate(&f)

			got := risk.Score(f, policy)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Len(t, got.Reasons, tt.wantReasons)
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  risk.Level
	}{
		{0, risk.LevelNone},
		{1, risk.LevelLow},
		{40, risk.LevelLow},
		{41, risk.LevelMedium},
		{70, risk.LevelMedium},
		{71, risk.LevelHigh},
		{200, risk.LevelHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, risk.LevelFor(tt.score), "score %d", tt.score)
	}
}
