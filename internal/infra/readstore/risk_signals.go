package readstore

import (
	"context"
	"time"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type RiskSignalQueries interface {
	GetUserByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Users, error)
	GetVehicle(ctx context.Context, db dbq.DBTX, id int64) (dbq.Vehicles, error)
	ReservationStatsByUser(ctx context.Context, db dbq.DBTX, userID uuid.UUID) (dbq.ReservationStatsByUserRow, error)
	UserExistsByEmailOrPhone(ctx context.Context, db dbq.DBTX, email, phone string) (bool, error)
	CountUsersCreatedSince(ctx context.Context, db dbq.DBTX, since time.Time) (int64, error)
}

// RiskSignalStore reads the facts the fraud checks score against.
type RiskSignalStore struct {
	queries RiskSignalQueries
	db      dbq.DBTX
}

func NewRiskSignalStore(queries RiskSignalQueries, db dbq.DBTX) *RiskSignalStore {
	return &RiskSignalStore{
		queries: queries,
		db:      db,
	}
}

func (s *RiskSignalStore) Snapshot(ctx context.Context, userID uuid.UUID, vehicleID int64) (*shared.RiskSignalsSnapshot, error) {
	u, err := s.queries.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read user for risk signals", err)
	}

	v, err := s.queries.GetVehicle(ctx, s.db, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read vehicle for risk signals", err)
	}

	stats, err := s.queries.ReservationStatsByUser(ctx, s.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation stats", err)
	}

	return &shared.RiskSignalsSnapshot{
		AccountCreatedAt:      pgconv.TimeFromPgtype(u.CreatedAt),
		VehicleDailyPrice:     v.DailyPrice,
		OpenReservations:      int(stats.OpenCount),
		TotalReservations:     int(stats.TotalCount),
		CancelledReservations: int(stats.CancelledCount),
	}, nil
}

func (s *RiskSignalStore) UserExists(ctx context.Context, email, phone string) (bool, error) {
	exists, err := s.queries.UserExistsByEmailOrPhone(ctx, s.db, email, phone)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check existing user", err)
	}
	return exists, nil
}

func (s *RiskSignalStore) CountRegistrationsSince(ctx context.Context, since time.Time) (int, error) {
	n, err := s.queries.CountUsersCreatedSince(ctx, s.db, since)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count recent registrations", err)
	}
	return int(n), nil
}
