package shared

import (
	"time"

	"rentcar-backend/internal/domain/payment"

	"github.com/google/uuid"
)

type RiskSignalsSnapshot struct {
	AccountCreatedAt      time.Time
	VehicleDailyPrice     int64
	OpenReservations      int
	TotalReservations     int
	CancelledReservations int
}

type StaleHold struct {
	ReservationID int64
	VehicleID     int64
}

type PaymentOutcome struct {
	IsSuccessful  bool
	Status        payment.Status
	FailureReason string
}

type FraudAlertType string

const (
	FraudAlertRegistration    FraudAlertType = "registration"
	FraudAlertReservationRisk FraudAlertType = "reservation_risk"
)

type FraudAlert struct {
	Type      FraudAlertType
	Email     string
	UserID    *uuid.UUID
	RiskScore int
	Reason    string
	CreatedAt time.Time
}
