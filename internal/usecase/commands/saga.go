package commands

import (
	"fmt"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/pkg/ptr"
)

var (
	ErrValidationFailure  = errs.New("validation failure")
	ErrGatewayFailure     = errs.New("payment gateway failure")
	ErrPersistenceFailure = errs.New("persistence failure")
)

// SagaState is where a reservation saga currently stands.
type SagaState string

const (
	StateValidating SagaState = "validating"
	StateBooking    SagaState = "booking"
	StateCharging   SagaState = "charging"
	StateConfirming SagaState = "confirming"
	StateCommitted  SagaState = "committed"
	StateRolledBack SagaState = "rolled_back"
)

// Failed step labels reported to callers.
const (
	StepRequestValidation       = "Request validation"
	StepVehicleNotFound         = "Vehicle not found"
	StepVehicleStatus           = "Vehicle status check"
	StepDuplicateCheck          = "Basic idempotency check"
	StepReservationCreation     = "Reservation creation"
	StepRiskAssessment          = "Risk assessment"
	StepPaymentProcessing       = "Payment processing"
	StepReservationConfirmation = "Reservation confirmation"
)

type FailureKind string

const (
	FailureValidation  FailureKind = "validation"
	FailureGateway     FailureKind = "gateway"
	FailurePersistence FailureKind = "persistence"
)

// SagaResult is both the response and the value stored in the idempotency ledger.
type SagaResult struct {
	Success        bool        `json:"success"`
	ReservationID  *int64      `json:"reservationId,omitempty"`
	TransactionID  string      `json:"transactionId,omitempty"`
	Message        string      `json:"message"`
	Steps          []string    `json:"steps"`
	FailedStep     string      `json:"failedStep,omitempty"`
	FailureKind    FailureKind `json:"failureKind,omitempty"`
	IdempotencyKey string      `json:"idempotencyKey"`
	RiskScore      *int        `json:"riskScore,omitempty"`
	RiskLevel      string      `json:"riskLevel,omitempty"`
	Replayed       bool        `json:"-"`
}

// Err maps a failed result to its error class. Nil for a successful result.
func (r *SagaResult) Err() error {
	if r.Success {
		return nil
	}
	switch r.FailureKind {
	case FailureGateway:
		return ErrGatewayFailure
	case FailurePersistence:
		return ErrPersistenceFailure
	default:
		return ErrValidationFailure
	}
}

// saga carries one execution. It is owned by a single goroutine.
type saga struct {
	state  SagaState
	result *SagaResult

	reservationID int64
	vehicleID     int64
	amount        int64
	transactionID string

	// set when the reservation was cancelled while the charge was in flight
	orphanedCharge *payment.Payment
}

func newSaga(key string) *saga {
	return &saga{
		state:  StateValidating,
		result: &SagaResult{IdempotencyKey: key, Steps: []string{}},
	}
}

func (s *saga) enter(next SagaState) {
	s.state = next
}

func (s *saga) done(format string, args ...any) {
	s.result.Steps = append(s.result.Steps, fmt.Sprintf(format, args...))
}

// fail records the abort. The state is left where it failed so compensation can look it up.
func (s *saga) fail(kind FailureKind, step, message string) {
	s.result.Success = false
	s.result.FailureKind = kind
	s.result.FailedStep = step
	s.result.Message = message
}

func (s *saga) commit(message string) {
	s.state = StateCommitted
	s.result.Success = true
	s.result.Message = message
	s.result.ReservationID = ptr.Of(s.reservationID)
	s.result.TransactionID = s.transactionID
}

func (s *saga) failed() bool {
	return s.result.FailureKind != ""
}
