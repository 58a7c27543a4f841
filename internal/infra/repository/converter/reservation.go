package converter

import (
	"math"

	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) dbq.CreateReservationParams {
	period := res.Period()
	price := res.Price()
	deposit := res.Deposit()

	return dbq.CreateReservationParams{
		UserID:         res.UserID(),
		VehicleID:      res.VehicleID(),
		PickupDate:     pgconv.TimeToPgtype(period.Pickup()),
		ReturnDate:     pgconv.TimeToPgtype(period.Return()),
		PickupLocation: res.PickupLocation(),
		ReturnLocation: res.ReturnLocation(),
		BasePrice:      price.Base(),
		Discount:       price.Discount(),
		TotalPrice:     price.Total(),
		DepositAmount:  deposit.Amount(),
		DepositStatus:  deposit.Status().String(),
		TotalDays:      clampInt32(period.Days()),
		TotalHours:     clampInt32(period.Hours()),
		Status:         res.Status().String(),
		CreatedAt:      pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ReservationToDomain(row dbq.Reservations) (*reservation.Reservation, error) {
	period, err := reservation.NewRentalPeriod(row.PickupDate.Time, row.ReturnDate.Time)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewPriceBreakdown(row.BasePrice, row.Discount)
	if err != nil {
		return nil, err
	}
	status, err := reservation.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}

	reason := ""
	if row.CancellationReason.Valid {
		reason = row.CancellationReason.String
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.VehicleID,
		row.UserID,
		period,
		row.PickupLocation,
		row.ReturnLocation,
		price,
		reservation.ReconstructDeposit(row.DepositAmount, reservation.DepositStatus(row.DepositStatus)),
		status,
		reason,
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	), nil
}

func clampInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v) // #nosec G115 -- bounded above
}
