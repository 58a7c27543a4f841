package request

import (
	"strings"
	"time"

	"rentcar-backend/internal/domain/reservation"

	"github.com/google/uuid"
)

type CardRequest struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number" binding:"required"`
	ExpireMonth string `json:"expireMonth"`
	ExpireYear  string `json:"expireYear"`
	CVC         string `json:"cvc"`
}

// Masked keeps the last four digits so stored requests never hold a full card number.
func (c *CardRequest) Masked() *CardRequest {
	if c == nil {
		return nil
	}
	out := *c
	n := strings.NewReplacer(" ", "", "-", "").Replace(c.Number)
	if len(n) > 4 {
		n = strings.Repeat("*", len(n)-4) + n[len(n)-4:]
	}
	out.Number = n
	out.CVC = ""
	return &out
}

type CreateReservationWithPaymentRequest struct {
	VehicleID      int64        `json:"vehicleId" binding:"required,gt=0"`
	PickupDate     time.Time    `json:"pickupDate" binding:"required"`
	ReturnDate     time.Time    `json:"returnDate" binding:"required"`
	PickupLocation string       `json:"pickupLocation" binding:"required"`
	ReturnLocation string       `json:"returnLocation" binding:"required"`
	Discount       int64        `json:"discount" binding:"gte=0"`
	PaymentAmount  int64        `json:"paymentAmount" binding:"required,gt=0"`
	IdempotencyKey string       `json:"idempotencyKey,omitempty"`
	Card           *CardRequest `json:"card,omitempty"`
}

// Sanitized is the form written to the idempotency ledger.
func (r CreateReservationWithPaymentRequest) Sanitized() CreateReservationWithPaymentRequest {
	r.Card = r.Card.Masked()
	return r
}

func (r CreateReservationWithPaymentRequest) ToDomain(userID uuid.UUID) (reservation.Draft, error) {
	period, err := reservation.NewRentalPeriod(r.PickupDate, r.ReturnDate)
	if err != nil {
		return reservation.Draft{}, err
	}

	if _, err := reservation.NewPriceBreakdown(r.PaymentAmount, r.Discount); err != nil {
		return reservation.Draft{}, err
	}

	return reservation.Draft{
		UserID:         userID,
		Period:         period,
		PickupLocation: r.PickupLocation,
		ReturnLocation: r.ReturnLocation,
		PaymentAmount:  r.PaymentAmount,
		Discount:       r.Discount,
	}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ListReservationsRequest struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
