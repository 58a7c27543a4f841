package dbq

import (
	"context"
)

const vehicleColumns = `id, plate, brand, model, daily_price, deposit_amount, status, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (Vehicles, error) {
	var v Vehicles
	err := row.Scan(
		&v.ID,
		&v.Plate,
		&v.Brand,
		&v.Model,
		&v.DailyPrice,
		&v.DepositAmount,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

const getVehicle = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

func (q *Queries) GetVehicle(ctx context.Context, db DBTX, id int64) (Vehicles, error) {
	return scanVehicle(db.QueryRow(ctx, getVehicle, id))
}

const getVehicleForUpdate = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`

// GetVehicleForUpdate must run inside a transaction; the row lock lasts until commit.
func (q *Queries) GetVehicleForUpdate(ctx context.Context, db DBTX, id int64) (Vehicles, error) {
	return scanVehicle(db.QueryRow(ctx, getVehicleForUpdate, id))
}

const transitionVehicleStatus = `
UPDATE vehicles
SET status = $3, updated_at = now()
WHERE id = $1 AND status = ANY($2::text[])
`

type TransitionVehicleStatusParams struct {
	ID   int64
	From []string
	To   string
}

// TransitionVehicleStatus is a compare-and-set. Zero rows means the vehicle was not in any From state.
func (q *Queries) TransitionVehicleStatus(ctx context.Context, db DBTX, arg TransitionVehicleStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, transitionVehicleStatus, arg.ID, arg.From, arg.To)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
