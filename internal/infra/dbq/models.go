package dbq

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Vehicles struct {
	ID            int64
	Plate         string
	Brand         string
	Model         string
	DailyPrice    int64
	DepositAmount int64
	Status        string
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type Reservations struct {
	ID                 int64
	UserID             uuid.UUID
	VehicleID          int64
	PickupDate         pgtype.Timestamptz
	ReturnDate         pgtype.Timestamptz
	PickupLocation     string
	ReturnLocation     string
	BasePrice          int64
	Discount           int64
	TotalPrice         int64
	DepositAmount      int64
	DepositStatus      string
	TotalDays          int32
	TotalHours         int32
	Status             string
	CancellationReason pgtype.Text
	CancelledAt        pgtype.Timestamptz
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

type Payments struct {
	ID            int64
	ReservationID int64
	Amount        int64
	PaymentType   string
	PaymentMethod string
	Status        string
	TransactionID string
	IsSuccessful  bool
	FailureReason pgtype.Text
	PaidAt        pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type PaymentRequests struct {
	IdempotencyKey string
	UserID         uuid.UUID
	RequestBody    []byte
	ResponseBody   []byte
	IsSuccessful   bool
	FailedStep     pgtype.Text
	ReservationID  pgtype.Int8
	TransactionID  pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

type FraudAlerts struct {
	ID         int64
	AlertType  string
	Email      pgtype.Text
	UserID     pgtype.UUID
	RiskScore  int32
	Reason     string
	IsResolved bool
	CreatedAt  pgtype.Timestamptz
}
