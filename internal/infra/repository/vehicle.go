package repository

import (
	"context"

	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/infra/repository/converter"
)

type VehicleWriteQueries interface {
	GetVehicleForUpdate(ctx context.Context, db dbq.DBTX, id int64) (dbq.Vehicles, error)
	TransitionVehicleStatus(ctx context.Context, db dbq.DBTX, arg dbq.TransitionVehicleStatusParams) (int64, error)
}

type VehicleRepository struct {
	queries VehicleWriteQueries
	db      dbq.DBTX
}

func NewVehicleRepository(queries VehicleWriteQueries, db dbq.DBTX) *VehicleRepository {
	return &VehicleRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleRepository) LockByID(ctx context.Context, tx dbq.DBTX, id int64) (*vehicle.Vehicle, error) {
	row, err := r.queries.GetVehicleForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock vehicle", err)
	}

	v, err := converter.VehicleToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map vehicle", err, infra.KindDBFailure)
	}
	return v, nil
}

func (r *VehicleRepository) Transition(ctx context.Context, tx dbq.DBTX, id int64, from []vehicle.Status, to vehicle.Status) error {
	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = s.String()
	}

	n, err := r.queries.TransitionVehicleStatus(ctx, tx, dbq.TransitionVehicleStatusParams{
		ID:   id,
		From: fromStr,
		To:   to.String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("vehicle status changed concurrently", vehicle.ErrNotHeld, infra.KindConflict)
	}
	return nil
}
