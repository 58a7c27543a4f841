package converter

import (
	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra/dbq"
)

func VehicleToDomain(row dbq.Vehicles) (*vehicle.Vehicle, error) {
	status, err := vehicle.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return vehicle.ReconstructVehicle(row.ID, row.Plate, row.DailyPrice, row.DepositAmount, status), nil
}
