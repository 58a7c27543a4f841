package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VehicleSpec struct {
	ID            int64
	DepositAmount int64
}

type Draft struct {
	UserID         uuid.UUID
	Period         RentalPeriod
	PickupLocation string
	ReturnLocation string
	PaymentAmount  int64
	Discount       int64
}

// NewReservation builds a Pending reservation. The charged amount is the base price.
func NewReservation(now time.Time, vehicle VehicleSpec, d Draft) (*Reservation, error) {
	pickupLoc := strings.TrimSpace(d.PickupLocation)
	returnLoc := strings.TrimSpace(d.ReturnLocation)
	if pickupLoc == "" || returnLoc == "" {
		return nil, ErrMissingLocation
	}

	price, err := NewPriceBreakdown(d.PaymentAmount, d.Discount)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		vehicleID:      vehicle.ID,
		userID:         d.UserID,
		period:         d.Period,
		pickupLocation: pickupLoc,
		returnLocation: returnLoc,
		price:          price,
		deposit:        NewDeposit(vehicle.DepositAmount),
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}
