package risk

import "time"

type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

const (
	shortRentalPoints      = 30
	longRentalPoints       = 20
	nightPickupPoints      = 15
	newAccountPricyPoints  = 25
	manyOpenBookingsPoints = 30
	highCancellationPoints = 20

	minCancellationSample = 3
	maxOpenBookings       = 3
	highCancellationRatio = 0.5
	nightStartHour        = 0
	nightEndHour          = 5

	newAccountAge        = 7 * 24 * time.Hour
	shortRentalThreshold = time.Hour
	longRentalThreshold  = 90 * 24 * time.Hour

	highBandFloor   = 71
	mediumBandFloor = 41
)

// Facts are the signals a reservation is scored on. Gathered by the caller.
type Facts struct {
	Pickup                time.Time
	Return                time.Time
	AccountCreatedAt      time.Time
	VehicleDailyPrice     int64
	OpenReservations      int
	TotalReservations     int
	CancelledReservations int
}

type Assessment struct {
	Score   int
	Level   Level
	Reasons []string
}

type rule struct {
	reason string
	points int
	match  func(f Facts, p Policy) bool
}

type Policy struct {
	Now                 time.Time
	ExpensiveDailyPrice int64
}

var rules = []rule{
	{
		reason: "rental shorter than one hour",
		points: shortRentalPoints,
		match:  func(f Facts, _ Policy) bool { return f.Return.Sub(f.Pickup) < shortRentalThreshold },
	},
	{
		reason: "rental longer than 90 days",
		points: longRentalPoints,
		match:  func(f Facts, _ Policy) bool { return f.Return.Sub(f.Pickup) > longRentalThreshold },
	},
	{
		reason: "pickup between midnight and 05:00",
		points: nightPickupPoints,
		match: func(f Facts, _ Policy) bool {
			h := f.Pickup.UTC().Hour()
			return h >= nightStartHour && h < nightEndHour
		},
	},
	{
		reason: "new account renting an expensive vehicle",
		points: newAccountPricyPoints,
		match: func(f Facts, p Policy) bool {
			return p.Now.Sub(f.AccountCreatedAt) < newAccountAge && f.VehicleDailyPrice > p.ExpensiveDailyPrice
		},
	},
	{
		reason: "more than 3 open reservations",
		points: manyOpenBookingsPoints,
		match:  func(f Facts, _ Policy) bool { return f.OpenReservations > maxOpenBookings },
	},
	{
		reason: "cancellation rate above 50%",
		points: highCancellationPoints,
		match: func(f Facts, _ Policy) bool {
			if f.TotalReservations < minCancellationSample {
				return false
			}
			return float64(f.CancelledReservations)/float64(f.TotalReservations) > highCancellationRatio
		},
	},
}

// Score is additive. Each rule contributes independently of the others.
func Score(f Facts, p Policy) Assessment {
	a := Assessment{}
	for _, r := range rules {
		if r.match(f, p) {
			a.Score += r.points
			a.Reasons = append(a.Reasons, r.reason)
		}
	}
	a.Level = LevelFor(a.Score)
	return a
}

func LevelFor(score int) Level {
	switch {
	case score >= highBandFloor:
		return LevelHigh
	case score >= mediumBandFloor:
		return LevelMedium
	case score > 0:
		return LevelLow
	default:
		return LevelNone
	}
}
