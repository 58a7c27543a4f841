package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod       = errors.New("return date must be after pickup date")
	ErrNonPositiveAmount   = errors.New("payment amount must be positive")
	ErrNegativeDiscount    = errors.New("discount cannot be negative")
	ErrDiscountExceedsBase = errors.New("discount cannot exceed base price")
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
	ErrMissingLocation     = errors.New("pickup and return locations are required")
)

type Reservation struct {
	id                 int64
	vehicleID          int64
	userID             uuid.UUID
	period             RentalPeriod
	pickupLocation     string
	returnLocation     string
	price              PriceBreakdown
	deposit            Deposit
	status             Status
	cancellationReason string
	cancelledAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func ReconstructReservation(
	id, vehicleID int64,
	userID uuid.UUID,
	period RentalPeriod,
	pickupLocation, returnLocation string,
	price PriceBreakdown,
	deposit Deposit,
	status Status,
	cancellationReason string,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		vehicleID:          vehicleID,
		userID:             userID,
		period:             period,
		pickupLocation:     pickupLocation,
		returnLocation:     returnLocation,
		price:              price,
		deposit:            deposit,
		status:             status,
		cancellationReason: cancellationReason,
		cancelledAt:        cancelledAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (r *Reservation) Confirm(now time.Time) error {
	return r.transition(StatusConfirmed, now)
}

func (r *Reservation) Start(now time.Time) error {
	return r.transition(StatusActive, now)
}

func (r *Reservation) Complete(now time.Time) error {
	return r.transition(StatusCompleted, now)
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if err := r.transition(StatusCancelled, now); err != nil {
		return err
	}
	r.cancellationReason = strings.TrimSpace(reason)
	cancelledAt := now
	r.cancelledAt = &cancelledAt
	return nil
}

func (r *Reservation) transition(next Status, now time.Time) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// SetID is called once the row has been inserted.
func (r *Reservation) SetID(id int64) {
	r.id = id
}

func (r *Reservation) BelongsTo(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() int64                  { return r.id }
func (r *Reservation) VehicleID() int64           { return r.vehicleID }
func (r *Reservation) UserID() uuid.UUID          { return r.userID }
func (r *Reservation) Period() RentalPeriod       { return r.period }
func (r *Reservation) PickupLocation() string     { return r.pickupLocation }
func (r *Reservation) ReturnLocation() string     { return r.returnLocation }
func (r *Reservation) Price() PriceBreakdown      { return r.price }
func (r *Reservation) Deposit() Deposit           { return r.deposit }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) CancellationReason() string { return r.cancellationReason }
func (r *Reservation) CancelledAt() *time.Time    { return r.cancelledAt }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
