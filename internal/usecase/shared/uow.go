package shared

import (
	"context"
	"time"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra/dbq"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db dbq.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db dbq.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Vehicles() VehicleRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Users() UserRepository
	FraudAlerts() FraudAlertRepository
	Reads() CommandReads
	DB() dbq.DBTX
}

type CommandReads interface {
	RiskSignals(ctx context.Context, userID uuid.UUID, vehicleID int64) (*RiskSignalsSnapshot, error)
	UserExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type VehicleRepository interface {
	LockByID(ctx context.Context, tx dbq.DBTX, id int64) (*vehicle.Vehicle, error)
	Transition(ctx context.Context, tx dbq.DBTX, id int64, from []vehicle.Status, to vehicle.Status) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, res *reservation.Reservation) (int64, error)
	LockByID(ctx context.Context, tx dbq.DBTX, id int64) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, tx dbq.DBTX, res *reservation.Reservation, from reservation.Status) error
	DeletePending(ctx context.Context, tx dbq.DBTX, id int64) error
	ExistsPaid(ctx context.Context, tx dbq.DBTX, userID uuid.UUID, vehicleID int64, period reservation.RentalPeriod) (bool, error)
	DeleteStaleHolds(ctx context.Context, tx dbq.DBTX, before time.Time) ([]StaleHold, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, p *payment.Payment) (int64, error)
	SuccessfulCharge(ctx context.Context, tx dbq.DBTX, reservationID int64) (*payment.Payment, error)
	LockByTransactionID(ctx context.Context, tx dbq.DBTX, transactionID string) (*payment.Payment, error)
	UpdateOutcome(ctx context.Context, tx dbq.DBTX, id int64, outcome PaymentOutcome) error
}

type UserRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx dbq.DBTX, userID uuid.UUID) error
}

type FraudAlertRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, alert FraudAlert) error
}
