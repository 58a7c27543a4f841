package payment

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount   = errors.New("payment amount must be positive")
	ErrAlreadyRefunded = errors.New("payment already refunded")
)

// UnknownTransactionID is stored when the gateway approved a charge without returning an id.
const UnknownTransactionID = "UNKNOWN"

type Type string

const (
	TypeReservation Type = "reservation"
	TypeDeposit     Type = "deposit"
	TypeExtraCharge Type = "extra_charge"
	TypeRefund      Type = "refund"
)

type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
	StatusCancelled Status = "cancelled"
)

type Payment struct {
	id            int64
	reservationID int64
	amount        int64
	typ           Type
	method        Method
	status        Status
	transactionID string
	isSuccessful  bool
	failureReason string
	paidAt        *time.Time
	createdAt     time.Time
}

// NewCapturedCharge records a charge the gateway already approved.
func NewCapturedCharge(reservationID, amount int64, transactionID string, now time.Time) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if transactionID == "" {
		transactionID = UnknownTransactionID
	}
	paidAt := now
	return &Payment{
		reservationID: reservationID,
		amount:        amount,
		typ:           TypeReservation,
		method:        MethodCreditCard,
		status:        StatusCompleted,
		transactionID: transactionID,
		isSuccessful:  true,
		paidAt:        &paidAt,
		createdAt:     now,
	}, nil
}

// NewRefund records the outcome of a refund request against an earlier charge.
func NewRefund(reservationID, amount int64, transactionID string, succeeded bool, failureReason string, now time.Time) *Payment {
	p := &Payment{
		reservationID: reservationID,
		amount:        amount,
		typ:           TypeRefund,
		method:        MethodCreditCard,
		transactionID: transactionID,
		isSuccessful:  succeeded,
		failureReason: failureReason,
		createdAt:     now,
	}
	if succeeded {
		p.status = StatusCompleted
		paidAt := now
		p.paidAt = &paidAt
	} else {
		p.status = StatusFailed
	}
	return p
}

func ReconstructPayment(
	id, reservationID, amount int64,
	typ Type, method Method, status Status,
	transactionID string, isSuccessful bool, failureReason string,
	paidAt *time.Time, createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		typ:           typ,
		method:        method,
		status:        status,
		transactionID: transactionID,
		isSuccessful:  isSuccessful,
		failureReason: failureReason,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}

func (p *Payment) SetID(id int64) {
	p.id = id
}

func (p *Payment) ID() int64              { return p.id }
func (p *Payment) ReservationID() int64   { return p.reservationID }
func (p *Payment) Amount() int64          { return p.amount }
func (p *Payment) Type() Type             { return p.typ }
func (p *Payment) Method() Method         { return p.method }
func (p *Payment) Status() Status         { return p.status }
func (p *Payment) TransactionID() string  { return p.transactionID }
func (p *Payment) IsSuccessful() bool     { return p.isSuccessful }
func (p *Payment) FailureReason() string  { return p.failureReason }
func (p *Payment) PaidAt() *time.Time     { return p.paidAt }
func (p *Payment) CreatedAt() time.Time   { return p.createdAt }
