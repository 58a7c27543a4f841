package queries

import (
	"time"

	"github.com/google/uuid"
)

// Actor is the authenticated caller a query runs on behalf of.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsStaff() bool {
	return a.Role == "operator" || a.Role == "admin"
}

type ReservationView struct {
	ID                 int64      `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	VehicleID          int64      `json:"vehicle_id"`
	PickupDate         time.Time  `json:"pickup_date"`
	ReturnDate         time.Time  `json:"return_date"`
	PickupLocation     string     `json:"pickup_location"`
	ReturnLocation     string     `json:"return_location"`
	BasePrice          int64      `json:"base_price"`
	Discount           int64      `json:"discount"`
	TotalPrice         int64      `json:"total_price"`
	DepositAmount      int64      `json:"deposit_amount"`
	DepositStatus      string     `json:"deposit_status"`
	TotalDays          int32      `json:"total_days"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type PaymentView struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservation_id"`
	Amount        int64      `json:"amount"`
	PaymentType   string     `json:"payment_type"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id"`
	IsSuccessful  bool       `json:"is_successful"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
