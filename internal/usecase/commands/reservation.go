package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/domain/risk"
	"rentcar-backend/internal/domain/vehicle"
	reqdto "rentcar-backend/internal/handler/dto/request"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/pkg/ptr"
	"rentcar-backend/internal/usecase/idempotency"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

var (
	errVehicleNotFound    = errs.New("vehicle not found")
	errVehicleUnavailable = errs.New("vehicle not available")
	errDuplicateBooking   = errs.New("reservation already paid")
	errInvalidDraft       = errs.New("invalid reservation")
	errForeignKey         = errs.New("idempotency key belongs to another user")
)

type ReservationCommands interface {
	CreateReservationWithPayment(ctx context.Context, req reqdto.CreateReservationWithPaymentRequest, userID uuid.UUID) (*SagaResult, error)
	Cancel(ctx context.Context, userID uuid.UUID, reservationID int64, reason string) (*CancelResult, error)
	Start(ctx context.Context, reservationID int64) error
	Complete(ctx context.Context, reservationID int64) error
}

type compensation func(ctx context.Context, s *saga) error

type reservationCommandsImpl struct {
	uow           shared.UnitOfWork
	gateway       shared.PaymentGateway
	ledger        IdempotencyLedger
	risk          RiskAssessor
	alerts        FraudAlertWriter
	clock         clock.Clock
	opts          SagaOptions
	compensations map[SagaState]compensation
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	ledger IdempotencyLedger,
	riskAssessor RiskAssessor,
	alerts FraudAlertWriter,
	clock clock.Clock,
	opts SagaOptions,
) ReservationCommands {
	c := &reservationCommandsImpl{
		uow:     uow,
		gateway: gateway,
		ledger:  ledger,
		risk:    riskAssessor,
		alerts:  alerts,
		clock:   clock,
		opts:    opts,
	}
	// Validating and Booking leave nothing behind: their writes roll back with the transaction.
	c.compensations = map[SagaState]compensation{
		StateCharging:   c.releaseHold,
		StateConfirming: c.settleUnconfirmedCharge,
	}
	return c
}

func (c *reservationCommandsImpl) CreateReservationWithPayment(
	ctx context.Context,
	req reqdto.CreateReservationWithPaymentRequest,
	userID uuid.UUID,
) (*SagaResult, error) {
	key, generated, err := idempotency.ResolveKey(req.IdempotencyKey, c.opts.RequireIdempotencyKey)
	if err != nil {
		s := newSaga("")
		s.fail(FailureValidation, StepRequestValidation, err.Error())
		return s.result, nil
	}
	if generated {
		slog.InfoContext(ctx, "idempotency key generated for request", "idempotency_key", key)
	}

	rec, found, err := c.ledger.Lookup(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrPersistenceFailure)
	}
	if found {
		return c.replay(ctx, rec, userID)
	}

	s := newSaga(key)
	c.run(ctx, s, req, userID)

	// The remaining writes must land even if the caller has gone away.
	c.record(context.WithoutCancel(ctx), s, req, userID)
	return s.result, nil
}

func (c *reservationCommandsImpl) replay(ctx context.Context, rec *idempotency.Record, userID uuid.UUID) (*SagaResult, error) {
	if rec.UserID != userID {
		slog.WarnContext(ctx, "idempotency key reused by another user", "idempotency_key", rec.Key)
		s := newSaga(rec.Key)
		s.fail(FailureValidation, StepRequestValidation, errForeignKey.Error())
		return s.result, nil
	}

	var result SagaResult
	if err := json.Unmarshal(rec.Response, &result); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode stored saga result"), ErrPersistenceFailure)
	}
	result.Replayed = true

	slog.InfoContext(ctx, "idempotent replay", "idempotency_key", rec.Key, "success", result.Success)
	return &result, nil
}

func (c *reservationCommandsImpl) run(ctx context.Context, s *saga, req reqdto.CreateReservationWithPaymentRequest, userID uuid.UUID) {
	draft, err := req.ToDomain(userID)
	if err != nil {
		s.fail(FailureValidation, StepRequestValidation, err.Error())
		s.enter(StateRolledBack)
		return
	}
	s.vehicleID = req.VehicleID
	s.amount = req.PaymentAmount
	s.done("Request validated")

	s.enter(StateBooking)
	assessment, booking := c.bookWithRiskGate(ctx, userID, draft, req.VehicleID)
	if booking.failStep != "" {
		s.fail(booking.kind, booking.failStep, booking.message)
		s.done("Rolled back")
		s.enter(StateRolledBack)
		return
	}
	s.reservationID = booking.reservationID
	s.done("Vehicle found (id: %d)", req.VehicleID)
	s.done("Basic idempotency check passed")
	s.done("Reservation created (id: %d)", booking.reservationID)

	pctx := context.WithoutCancel(ctx)

	s.enter(StateCharging)
	if blocked := c.applyRisk(pctx, s, assessment, userID); blocked {
		c.rollback(pctx, s)
		return
	}

	if ok := c.charge(ctx, s, req, userID); !ok {
		c.rollback(pctx, s)
		return
	}

	s.enter(StateConfirming)
	if err := c.confirm(pctx, s); err != nil {
		slog.ErrorContext(ctx, "charge captured but reservation not confirmed",
			"reservation_id", s.reservationID,
			"transaction_id", s.transactionID,
			"amount", s.amount,
			"error", err)
		s.fail(FailurePersistence, StepReservationConfirmation,
			fmt.Sprintf("payment %s captured but the reservation could not be confirmed", s.transactionID))
		s.result.TransactionID = s.transactionID
		c.rollback(pctx, s)
		return
	}
	if s.orphanedCharge != nil {
		slog.WarnContext(ctx, "reservation cancelled while its payment was in flight",
			"reservation_id", s.reservationID,
			"transaction_id", s.transactionID)
		s.fail(FailureValidation, StepReservationConfirmation,
			fmt.Sprintf("reservation was cancelled while payment %s was captured", s.transactionID))
		s.result.TransactionID = s.transactionID
		c.rollback(pctx, s)
		return
	}
	s.done("Payment saved")
	s.done("Reservation confirmed")
	s.done("Vehicle rented")
	s.done("Committed")
	s.commit("Reservation and payment completed")

	slog.InfoContext(ctx, "reservation saga committed",
		"reservation_id", s.reservationID,
		"vehicle_id", s.vehicleID,
		"transaction_id", s.transactionID)
}

type bookingOutcome struct {
	reservationID int64
	failStep      string
	kind          FailureKind
	message       string
}

// bookWithRiskGate runs the booking transaction and the risk assessment side by side.
func (c *reservationCommandsImpl) bookWithRiskGate(ctx context.Context, userID uuid.UUID, draft reservation.Draft, vehicleID int64) (*risk.Assessment, bookingOutcome) {
	var (
		assessment *risk.Assessment
		booking    bookingOutcome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := c.risk.Assess(gctx, userID, vehicleID, draft.Period.Pickup(), draft.Period.Return())
		if err != nil {
			slog.WarnContext(gctx, "risk assessment unavailable", "vehicle_id", vehicleID, "error", err)
			return nil
		}
		assessment = &a
		return nil
	})
	g.Go(func() error {
		booking = c.book(gctx, userID, draft, vehicleID)
		return nil
	})
	_ = g.Wait()

	return assessment, booking
}

func (c *reservationCommandsImpl) book(ctx context.Context, userID uuid.UUID, draft reservation.Draft, vehicleID int64) bookingOutcome {
	var out bookingOutcome

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := tx.Vehicles().LockByID(ctx, tx.DB(), vehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errVehicleNotFound)
			}
			return err
		}
		if err := v.Hold(); err != nil {
			return errs.Mark(errs.New(fmt.Sprintf("vehicle is %s", v.Status())), errVehicleUnavailable)
		}

		dup, err := tx.Reservations().ExistsPaid(ctx, tx.DB(), userID, vehicleID, draft.Period)
		if err != nil {
			return err
		}
		if dup {
			return errDuplicateBooking
		}

		res, err := reservation.NewReservation(c.clock.Now(), reservation.VehicleSpec{
			ID:            v.ID(),
			DepositAmount: v.DepositAmount(),
		}, draft)
		if err != nil {
			return errs.Mark(err, errInvalidDraft)
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), res)
		if err != nil {
			return err
		}

		if err := tx.Vehicles().Transition(ctx, tx.DB(), v.ID(),
			[]vehicle.Status{vehicle.StatusAvailable}, vehicle.StatusReserved); err != nil {
			return err
		}

		out.reservationID = id
		return nil
	})
	if err == nil {
		return out
	}

	switch {
	case errs.Is(err, errVehicleNotFound):
		return bookingOutcome{failStep: StepVehicleNotFound, kind: FailureValidation, message: fmt.Sprintf("vehicle %d not found", vehicleID)}
	case errs.Is(err, errVehicleUnavailable):
		return bookingOutcome{failStep: StepVehicleStatus, kind: FailureValidation, message: "vehicle is not available: " + err.Error()}
	case errs.Is(err, errDuplicateBooking):
		return bookingOutcome{failStep: StepDuplicateCheck, kind: FailureValidation, message: "a paid reservation already exists for this vehicle and period"}
	case errs.Is(err, errInvalidDraft):
		return bookingOutcome{failStep: StepReservationCreation, kind: FailureValidation, message: err.Error()}
	default:
		slog.ErrorContext(ctx, "booking transaction failed", "vehicle_id", vehicleID, "error", err)
		return bookingOutcome{failStep: StepReservationCreation, kind: FailurePersistence, message: "reservation could not be created"}
	}
}

// applyRisk reports whether the saga must stop because of the risk score.
func (c *reservationCommandsImpl) applyRisk(ctx context.Context, s *saga, a *risk.Assessment, userID uuid.UUID) bool {
	if a == nil {
		s.done("Risk assessment skipped")
		return false
	}
	s.result.RiskScore = ptr.Of(a.Score)
	s.result.RiskLevel = string(a.Level)
	s.done("Risk assessed (score: %d, level: %s)", a.Score, a.Level)

	if a.Level != risk.LevelHigh {
		return false
	}

	uid := userID
	alert := shared.FraudAlert{
		Type:      shared.FraudAlertReservationRisk,
		UserID:    &uid,
		RiskScore: a.Score,
		Reason:    fmt.Sprintf("reservation %d: %v", s.reservationID, a.Reasons),
		CreatedAt: c.clock.Now(),
	}
	if err := c.alerts.WriteAlert(ctx, alert); err != nil {
		slog.WarnContext(ctx, "failed to record fraud alert", "reservation_id", s.reservationID, "error", err)
	}

	if !c.opts.BlockHighRisk {
		return false
	}
	s.fail(FailureValidation, StepRiskAssessment, "reservation rejected by risk assessment")
	return true
}

func (c *reservationCommandsImpl) charge(ctx context.Context, s *saga, req reqdto.CreateReservationWithPaymentRequest, userID uuid.UUID) bool {
	chargeReq := shared.ChargeRequest{
		ReservationID: s.reservationID,
		BuyerID:       userID.String(),
		Amount:        req.PaymentAmount,
	}
	if req.Card != nil {
		chargeReq.Card = &shared.Card{
			HolderName:  req.Card.HolderName,
			Number:      req.Card.Number,
			ExpireMonth: req.Card.ExpireMonth,
			ExpireYear:  req.Card.ExpireYear,
			CVC:         req.Card.CVC,
		}
	}

	cctx, cancel := context.WithTimeout(ctx, c.opts.GatewayTimeout)
	defer cancel()

	res, err := c.gateway.Charge(cctx, chargeReq)
	if err != nil {
		slog.WarnContext(ctx, "payment gateway call failed", "reservation_id", s.reservationID, "error", err)
		msg := "payment gateway unavailable"
		if errs.Is(cctx.Err(), context.DeadlineExceeded) {
			msg = "payment gateway timed out"
		}
		s.fail(FailureGateway, StepPaymentProcessing, msg)
		return false
	}
	if !res.Success {
		s.fail(FailureGateway, StepPaymentProcessing, fmt.Sprintf("payment failed: %s (%s)", res.Message, res.ErrorCode))
		return false
	}

	s.transactionID = res.TransactionID
	if s.transactionID == "" {
		s.transactionID = payment.UnknownTransactionID
	}
	s.done("Payment captured (transaction: %s)", s.transactionID)
	return true
}

func (c *reservationCommandsImpl) confirm(ctx context.Context, s *saga) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s.orphanedCharge = nil
		now := c.clock.Now()

		res, err := tx.Reservations().LockByID(ctx, tx.DB(), s.reservationID)
		if err != nil {
			return err
		}

		p, err := payment.NewCapturedCharge(s.reservationID, s.amount, s.transactionID, now)
		if err != nil {
			return err
		}
		id, err := tx.Payments().Create(ctx, tx.DB(), p)
		if err != nil {
			return err
		}
		p.SetID(id)

		// The owner cancelled during Charging. Keep the charge on record so it can be refunded.
		if res.Status() == reservation.StatusCancelled {
			s.orphanedCharge = p
			return nil
		}

		if err := res.Confirm(now); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res, reservation.StatusPending); err != nil {
			return err
		}

		return tx.Vehicles().Transition(ctx, tx.DB(), s.vehicleID,
			[]vehicle.Status{vehicle.StatusReserved}, vehicle.StatusRented)
	})
}

// rollback runs the compensation registered for the state the saga failed in.
func (c *reservationCommandsImpl) rollback(ctx context.Context, s *saga) {
	if comp, ok := c.compensations[s.state]; ok {
		if err := comp(ctx, s); err != nil {
			slog.ErrorContext(ctx, "saga compensation failed",
				"state", s.state,
				"reservation_id", s.reservationID,
				"error", err)
		}
	}
	s.done("Rolled back")
	s.enter(StateRolledBack)
}

func (c *reservationCommandsImpl) releaseHold(ctx context.Context, s *saga) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().DeletePending(ctx, tx.DB(), s.reservationID); err != nil {
			return err
		}
		return tx.Vehicles().Transition(ctx, tx.DB(), s.vehicleID,
			[]vehicle.Status{vehicle.StatusReserved}, vehicle.StatusAvailable)
	})
}

// settleUnconfirmedCharge refunds a charge whose reservation was cancelled mid-saga.
// Every other confirmation failure is left for manual reconciliation.
func (c *reservationCommandsImpl) settleUnconfirmedCharge(ctx context.Context, s *saga) error {
	if s.orphanedCharge == nil {
		return c.flagForReconciliation(ctx, s)
	}
	summary := c.refund(ctx, s.orphanedCharge)
	if !summary.Success {
		return c.flagForReconciliation(ctx, s)
	}
	s.done("Payment refunded (transaction: %s)", s.transactionID)
	return nil
}

// flagForReconciliation leaves the hold in place. The ledger keeps the transaction id,
// which also keeps the hold reaper away from it.
func (c *reservationCommandsImpl) flagForReconciliation(ctx context.Context, s *saga) error {
	slog.ErrorContext(ctx, "manual reconciliation required",
		"reservation_id", s.reservationID,
		"vehicle_id", s.vehicleID,
		"transaction_id", s.transactionID)
	return nil
}

func (c *reservationCommandsImpl) record(ctx context.Context, s *saga, req reqdto.CreateReservationWithPaymentRequest, userID uuid.UUID) {
	reqBody, err := json.Marshal(req.Sanitized())
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode saga request", "error", err)
		return
	}
	resBody, err := json.Marshal(s.result)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode saga result", "error", err)
		return
	}

	rec := &idempotency.Record{
		Key:           s.result.IdempotencyKey,
		UserID:        userID,
		Request:       reqBody,
		Response:      resBody,
		Success:       s.result.Success,
		FailedStep:    s.result.FailedStep,
		TransactionID: s.transactionID,
		CreatedAt:     c.clock.Now(),
	}
	if s.reservationID != 0 && (!s.failed() || s.result.FailureKind == FailurePersistence) {
		rec.ReservationID = ptr.Of(s.reservationID)
	}

	if err := c.ledger.Commit(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to record saga outcome, retries may run again",
			"idempotency_key", rec.Key,
			"error", err)
	}
}
