package shared

import "context"

//go:generate mockgen -source=gateway.go -destination=../../../tests/mock/shared/gateway_mock.go -package=sharedmock

// PaymentGateway charges cards through an external processor. A decline is reported in
// the result; a non-nil error means the processor could not be reached or answered badly.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResult, error)
}

type Card struct {
	HolderName  string
	Number      string
	ExpireMonth string
	ExpireYear  string
	CVC         string
}

// Amount is in minor currency units. A nil Card selects the processor's default test card.
type ChargeRequest struct {
	ReservationID int64
	BuyerID       string
	Amount        int64
	Card          *Card
}

type ChargeResult struct {
	Success       bool
	TransactionID string
	Message       string
	ErrorCode     string
}

type RefundRequest struct {
	TransactionID string
	Amount        int64
}

type RefundResult struct {
	Success   bool
	Message   string
	ErrorCode string
}
