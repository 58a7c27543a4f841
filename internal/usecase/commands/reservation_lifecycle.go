package commands

import (
	"context"
	"fmt"
	"log/slog"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrReservationForbidden = errs.New("reservation belongs to another user")
)

const refundReasonCancellation = "Refunded on cancellation"

type RefundSummary struct {
	Success       bool
	TransactionID string
	Amount        int64
	Message       string
}

type CancelResult struct {
	ReservationID int64
	Status        reservation.Status
	Refund        *RefundSummary
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, userID uuid.UUID, reservationID int64, reason string) (*CancelResult, error) {
	var charge *payment.Payment

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		charge = nil

		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !res.BelongsTo(userID) {
			return ErrReservationForbidden
		}

		prev := res.Status()
		if err := res.Cancel(reason, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res, prev); err != nil {
			return err
		}
		if err := c.releaseVehicle(ctx, tx, res.VehicleID()); err != nil {
			return err
		}

		p, err := tx.Payments().SuccessfulCharge(ctx, tx.DB(), reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		charge = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reservation cancelled", "reservation_id", reservationID)

	result := &CancelResult{ReservationID: reservationID, Status: reservation.StatusCancelled}
	if charge != nil {
		result.Refund = c.refund(context.WithoutCancel(ctx), charge)
	}
	return result, nil
}

// refund runs after the cancellation committed. Its failures are recorded, never returned.
func (c *reservationCommandsImpl) refund(ctx context.Context, charge *payment.Payment) *RefundSummary {
	summary := &RefundSummary{TransactionID: charge.TransactionID(), Amount: charge.Amount()}

	rctx, cancel := context.WithTimeout(ctx, c.opts.GatewayTimeout)
	res, err := c.gateway.Refund(rctx, shared.RefundRequest{
		TransactionID: charge.TransactionID(),
		Amount:        charge.Amount(),
	})
	cancel()

	switch {
	case err != nil:
		summary.Message = "refund gateway unavailable"
	case !res.Success:
		summary.Message = fmt.Sprintf("refund rejected: %s (%s)", res.Message, res.ErrorCode)
	default:
		summary.Success = true
		summary.Message = "refund accepted"
	}
	if !summary.Success {
		slog.ErrorContext(ctx, "refund failed",
			"reservation_id", charge.ReservationID(),
			"transaction_id", charge.TransactionID(),
			"message", summary.Message,
			"error", err)
	}

	failureReason := ""
	if !summary.Success {
		failureReason = summary.Message
	}
	now := c.clock.Now()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		row := payment.NewRefund(charge.ReservationID(), charge.Amount(), charge.TransactionID(), summary.Success, failureReason, now)
		if _, err := tx.Payments().Create(ctx, tx.DB(), row); err != nil {
			return err
		}
		if !summary.Success {
			return nil
		}
		return tx.Payments().UpdateOutcome(ctx, tx.DB(), charge.ID(), shared.PaymentOutcome{
			IsSuccessful:  false,
			Status:        payment.StatusRefunded,
			FailureReason: refundReasonCancellation,
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to record refund",
			"reservation_id", charge.ReservationID(),
			"transaction_id", charge.TransactionID(),
			"error", err)
	}
	return summary
}

func (c *reservationCommandsImpl) Start(ctx context.Context, reservationID int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		prev := res.Status()
		if err := res.Start(c.clock.Now()); err != nil {
			return err
		}
		return tx.Reservations().UpdateStatus(ctx, tx.DB(), res, prev)
	})
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, reservationID int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		prev := res.Status()
		if err := res.Complete(c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res, prev); err != nil {
			return err
		}
		return c.releaseVehicle(ctx, tx, res.VehicleID())
	})
}

func (c *reservationCommandsImpl) lockReservation(ctx context.Context, tx shared.Tx, id int64) (*reservation.Reservation, error) {
	res, err := tx.Reservations().LockByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// releaseVehicle tolerates a vehicle that was moved out of the booking flow, e.g. into maintenance.
func (c *reservationCommandsImpl) releaseVehicle(ctx context.Context, tx shared.Tx, vehicleID int64) error {
	err := tx.Vehicles().Transition(ctx, tx.DB(), vehicleID,
		[]vehicle.Status{vehicle.StatusReserved, vehicle.StatusRented}, vehicle.StatusAvailable)
	if infra.IsKind(err, infra.KindConflict) {
		slog.WarnContext(ctx, "vehicle not released, status changed elsewhere", "vehicle_id", vehicleID)
		return nil
	}
	return err
}
