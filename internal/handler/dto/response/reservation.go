package response

import (
	"time"

	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                 int64      `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	VehicleID          int64      `json:"vehicleId"`
	PickupDate         time.Time  `json:"pickupDate"`
	ReturnDate         time.Time  `json:"returnDate"`
	PickupLocation     string     `json:"pickupLocation"`
	ReturnLocation     string     `json:"returnLocation"`
	BasePrice          int64      `json:"basePrice"`
	Discount           int64      `json:"discount"`
	TotalPrice         int64      `json:"totalPrice"`
	DepositAmount      int64      `json:"depositAmount"`
	DepositStatus      string     `json:"depositStatus"`
	TotalDays          int32      `json:"totalDays"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type ReservationPageResponse struct {
	Items     []*ReservationResponse `json:"items"`
	NextAfter string                 `json:"nextAfter,omitempty"`
}

type PaymentResponse struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservationId"`
	Amount        int64      `json:"amount"`
	PaymentType   string     `json:"paymentType"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId"`
	IsSuccessful  bool       `json:"isSuccessful"`
	FailureReason *string    `json:"failureReason,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SagaResponse is the body of every reservation-with-payment answer, replays included.
type SagaResponse struct {
	Success        bool     `json:"success"`
	ReservationID  *int64   `json:"reservationId"`
	TransactionID  string   `json:"transactionId,omitempty"`
	Message        string   `json:"message"`
	Steps          []string `json:"steps"`
	FailedStep     string   `json:"failedStep,omitempty"`
	IdempotencyKey string   `json:"idempotencyKey"`
	RiskScore      *int     `json:"riskScore,omitempty"`
	RiskLevel      string   `json:"riskLevel,omitempty"`
}

type CancelResponse struct {
	ReservationID int64           `json:"reservationId"`
	Status        string          `json:"status"`
	Refund        *RefundResponse `json:"refund,omitempty"`
}

type RefundResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Message       string `json:"message"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	out := &ReservationResponse{}
	_ = copier.Copy(out, v)
	return out
}

func FromReservationPage(views []*queries.ReservationView, next *queries.Cursor) *ReservationPageResponse {
	items := make([]*ReservationResponse, 0, len(views))
	_ = copier.Copy(&items, &views)
	page := &ReservationPageResponse{Items: items}
	if next != nil {
		page.NextAfter = next.After
	}
	return page
}

func FromPaymentViews(views []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(views))
	_ = copier.Copy(&out, &views)
	return out
}

func FromSagaResult(r *commands.SagaResult) *SagaResponse {
	out := &SagaResponse{}
	_ = copier.Copy(out, r)
	if out.Steps == nil {
		out.Steps = []string{}
	}
	return out
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	out := &CancelResponse{
		ReservationID: r.ReservationID,
		Status:        r.Status.String(),
	}
	if r.Refund != nil {
		out.Refund = &RefundResponse{}
		_ = copier.Copy(out.Refund, r.Refund)
	}
	return out
}
