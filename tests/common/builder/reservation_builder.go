//go:build unit || e2e

package builder

import (
	"time"

	"rentcar-backend/internal/domain/reservation"
	reqdto "rentcar-backend/internal/handler/dto/request"

	"github.com/google/uuid"
)

const (
	ApprovedCard = "4111111111111111"
	DeclinedCard = "4000000000000002"
)

// ReservationBuilder produces a saga request for a three day daytime rental.
type ReservationBuilder struct {
	VehicleID      int64
	PickupDate     time.Time
	ReturnDate     time.Time
	PickupLocation string
	ReturnLocation string
	Discount       int64
	PaymentAmount  int64
	IdempotencyKey string
	CardNumber     string
}

func NewReservationBuilder() *ReservationBuilder {
	pickup := time.Now().UTC().Add(72 * time.Hour).Truncate(24 * time.Hour).Add(10 * time.Hour)
	return &ReservationBuilder{
		VehicleID:      7,
		PickupDate:     pickup,
		ReturnDate:     pickup.Add(72 * time.Hour),
		PickupLocation: "Istanbul Airport",
		ReturnLocation: "Istanbul Airport",
		PaymentAmount:  1500,
		IdempotencyKey: uuid.NewString(),
		CardNumber:     ApprovedCard,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithVehicle(id int64) *ReservationBuilder {
	b.VehicleID = id
	return b
}

func (b *ReservationBuilder) WithKey(key string) *ReservationBuilder {
	b.IdempotencyKey = key
	return b
}

func (b *ReservationBuilder) WithCard(number string) *ReservationBuilder {
	b.CardNumber = number
	return b
}

func (b *ReservationBuilder) WithPeriod(pickup, ret time.Time) *ReservationBuilder {
	b.PickupDate = pickup
	b.ReturnDate = ret
	return b
}

func (b *ReservationBuilder) BuildRequest() reqdto.CreateReservationWithPaymentRequest {
	req := reqdto.CreateReservationWithPaymentRequest{
		VehicleID:      b.VehicleID,
		PickupDate:     b.PickupDate,
		ReturnDate:     b.ReturnDate,
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
		Discount:       b.Discount,
		PaymentAmount:  b.PaymentAmount,
		IdempotencyKey: b.IdempotencyKey,
	}
	if b.CardNumber != "" {
		req.Card = &reqdto.CardRequest{
			HolderName:  "Test User",
			Number:      b.CardNumber,
			ExpireMonth: "12",
			ExpireYear:  "2030",
			CVC:         "123",
		}
	}
	return req
}

func (b *ReservationBuilder) BuildDraft(userID uuid.UUID) (reservation.Draft, error) {
	return b.BuildRequest().ToDomain(userID)
}
