package queries

import (
	"context"
	"time"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
	ErrInvalidCursor       = errs.New("invalid cursor")
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor Actor, id int64) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListPayments(ctx context.Context, actor Actor, reservationID int64) ([]*PaymentView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, afterCreatedAt *time.Time, afterID int64, limit int32) ([]*ReservationView, error)
}

type PaymentViewRepo interface {
	FindByReservationID(ctx context.Context, reservationID int64) ([]*PaymentView, error)
}

type reservationQueriesImpl struct {
	repo     ReservationViewRepo
	payments PaymentViewRepo
}

func NewReservationQueries(repo ReservationViewRepo, payments PaymentViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, payments: payments}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor Actor, id int64) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if view.UserID != actor.UserID && !actor.IsStaff() {
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var afterCreatedAt *time.Time
	var afterID int64
	if after != nil && after.After != "" {
		t, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		afterCreatedAt, afterID = &t, id
	}

	// one extra row tells us whether another page exists
	rows, err := q.repo.FindByUserID(ctx, userID, afterCreatedAt, afterID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}

	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}

func (q *reservationQueriesImpl) ListPayments(ctx context.Context, actor Actor, reservationID int64) ([]*PaymentView, error) {
	if _, err := q.GetByID(ctx, actor, reservationID); err != nil {
		return nil, err
	}
	return q.payments.FindByReservationID(ctx, reservationID)
}
