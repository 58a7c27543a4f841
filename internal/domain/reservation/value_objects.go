package reservation

import (
	"math"
	"time"
)

type RentalPeriod struct {
	pickup time.Time
	ret    time.Time
}

func NewRentalPeriod(pickup, ret time.Time) (RentalPeriod, error) {
	if pickup.IsZero() || ret.IsZero() {
		return RentalPeriod{}, ErrInvalidPeriod
	}
	if !ret.After(pickup) {
		return RentalPeriod{}, ErrInvalidPeriod
	}
	// stored in UTC so hour-of-day rules read the same clock for every client offset
	return RentalPeriod{pickup: pickup.UTC(), ret: ret.UTC()}, nil
}

func (p RentalPeriod) Pickup() time.Time { return p.pickup }
func (p RentalPeriod) Return() time.Time { return p.ret }

func (p RentalPeriod) Duration() time.Duration {
	return p.ret.Sub(p.pickup)
}

// Billable days, rounded up, never less than one.
func (p RentalPeriod) Days() int {
	days := int(math.Ceil(p.Duration().Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func (p RentalPeriod) Hours() int {
	return p.Days() * 24
}

func (p RentalPeriod) Equal(other RentalPeriod) bool {
	return p.pickup.Equal(other.pickup) && p.ret.Equal(other.ret)
}

type PriceBreakdown struct {
	base     int64
	discount int64
}

func NewPriceBreakdown(base, discount int64) (PriceBreakdown, error) {
	if base <= 0 {
		return PriceBreakdown{}, ErrNonPositiveAmount
	}
	if discount < 0 {
		return PriceBreakdown{}, ErrNegativeDiscount
	}
	if discount > base {
		return PriceBreakdown{}, ErrDiscountExceedsBase
	}
	return PriceBreakdown{base: base, discount: discount}, nil
}

func (p PriceBreakdown) Base() int64     { return p.base }
func (p PriceBreakdown) Discount() int64 { return p.discount }

func (p PriceBreakdown) Total() int64 {
	return p.base - p.discount
}

type Deposit struct {
	amount int64
	status DepositStatus
}

func NewDeposit(amount int64) Deposit {
	if amount < 0 {
		amount = 0
	}
	return Deposit{amount: amount, status: DepositPending}
}

func ReconstructDeposit(amount int64, status DepositStatus) Deposit {
	return Deposit{amount: amount, status: status}
}

func (d Deposit) Amount() int64         { return d.amount }
func (d Deposit) Status() DepositStatus { return d.status }
