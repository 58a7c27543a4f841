//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/domain/reservation"
	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/shared"
	commandsmock "rentcar-backend/tests/mock/commands"
	sharedmock "rentcar-backend/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type lifecycleSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	vehicles     *sharedmock.MockVehicleRepository
	reservations *sharedmock.MockReservationRepository
	payments     *sharedmock.MockPaymentRepository
	gateway      *sharedmock.MockPaymentGateway
	clock        *clock.MockClock
	owner        uuid.UUID
	sut          commands.ReservationCommands
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(lifecycleSuite))
}

func (s *lifecycleSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.vehicles = sharedmock.NewMockVehicleRepository(s.ctrl)
	s.reservations = sharedmock.NewMockReservationRepository(s.ctrl)
	s.payments = sharedmock.NewMockPaymentRepository(s.ctrl)
	s.gateway = sharedmock.NewMockPaymentGateway(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.owner = uuid.New()

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.tx.EXPECT().Vehicles().Return(s.vehicles).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.reservations).AnyTimes()
	s.tx.EXPECT().Payments().Return(s.payments).AnyTimes()

	s.sut = commands.NewReservationCommands(
		s.uow, s.gateway,
		commandsmock.NewMockIdempotencyLedger(s.ctrl),
		commandsmock.NewMockRiskAssessor(s.ctrl),
		commandsmock.NewMockFraudAlertWriter(s.ctrl),
		s.clock,
		commands.SagaOptions{GatewayTimeout: time.Second},
	)
}

func (s *lifecycleSuite) reservationIn(status reservation.Status) *reservation.Reservation {
	pickup := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	period, err := reservation.NewRentalPeriod(pickup, pickup.Add(72*time.Hour))
	s.Require().NoError(err)
	price, err := reservation.NewPriceBreakdown(1500, 0)
	s.Require().NoError(err)
	created := s.clock.Now().Add(-time.Hour)
	return reservation.ReconstructReservation(
		testReservationID, testVehicleID, s.owner, period,
		"Istanbul Airport", "Istanbul Airport",
		price, reservation.NewDeposit(250), status,
		"", nil, created, created,
	)
}

func (s *lifecycleSuite) capturedCharge() *payment.Payment {
	paidAt := s.clock.Now().Add(-time.Hour)
	return payment.ReconstructPayment(11, testReservationID, 1500,
		payment.TypeReservation, payment.MethodCreditCard, payment.StatusCompleted,
		testTransactionID, true, "", &paidAt, paidAt)
}

func (s *lifecycleSuite) expectRelease() {
	s.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), testVehicleID,
		[]vehicle.Status{vehicle.StatusReserved, vehicle.StatusRented}, vehicle.StatusAvailable).Return(nil)
}

func (s *lifecycleSuite) TestCancelRefundsCharge() {
	s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusConfirmed), nil)
	s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), reservation.StatusConfirmed).
		DoAndReturn(func(_ context.Context, _ dbq.DBTX, res *reservation.Reservation, _ reservation.Status) error {
			s.Equal(reservation.StatusCancelled, res.Status())
			s.Equal("plans changed", res.CancellationReason())
			return nil
		})
	s.expectRelease()
	s.payments.EXPECT().SuccessfulCharge(gomock.Any(), gomock.Any(), testReservationID).Return(s.capturedCharge(), nil)
	s.gateway.EXPECT().Refund(gomock.Any(), shared.RefundRequest{TransactionID: testTransactionID, Amount: 1500}).
		Return(shared.RefundResult{Success: true}, nil)
	s.payments.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ dbq.DBTX, p *payment.Payment) (int64, error) {
			s.Equal(payment.TypeRefund, p.Type())
			s.Equal(payment.StatusCompleted, p.Status())
			return 12, nil
		})
	s.payments.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), int64(11), shared.PaymentOutcome{
		Status:        payment.StatusRefunded,
		FailureReason: "Refunded on cancellation",
	}).Return(nil)

	result, err := s.sut.Cancel(context.Background(), s.owner, testReservationID, "  plans changed ")

	s.Require().NoError(err)
	s.Equal(reservation.StatusCancelled, result.Status)
	s.Require().NotNil(result.Refund)
	s.True(result.Refund.Success)
	s.Equal(int64(1500), result.Refund.Amount)
}

func (s *lifecycleSuite) TestCancelWithRejectedRefund() {
	s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusConfirmed), nil)
	s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.expectRelease()
	s.payments.EXPECT().SuccessfulCharge(gomock.Any(), gomock.Any(), testReservationID).Return(s.capturedCharge(), nil)
	s.gateway.EXPECT().Refund(gomock.Any(), gomock.Any()).
		Return(shared.RefundResult{Message: "Refund window closed", ErrorCode: "REFUND_DECLINED"}, nil)
	s.payments.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ dbq.DBTX, p *payment.Payment) (int64, error) {
			s.Equal(payment.StatusFailed, p.Status())
			s.Contains(p.FailureReason(), "REFUND_DECLINED")
			return 12, nil
		})
	s.payments.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := s.sut.Cancel(context.Background(), s.owner, testReservationID, "")

	s.Require().NoError(err)
	s.Require().NotNil(result.Refund)
	s.False(result.Refund.Success)
	s.Contains(result.Refund.Message, "refund rejected")
}

func (s *lifecycleSuite) TestCancelPendingWithoutCharge() {
	s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusPending), nil)
	s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), reservation.StatusPending).Return(nil)
	s.expectRelease()
	s.payments.EXPECT().SuccessfulCharge(gomock.Any(), gomock.Any(), testReservationID).
		Return(nil, infra.WrapRepoErr("no charge", nil, infra.KindNotFound))
	s.gateway.EXPECT().Refund(gomock.Any(), gomock.Any()).Times(0)

	result, err := s.sut.Cancel(context.Background(), s.owner, testReservationID, "")

	s.Require().NoError(err)
	s.Nil(result.Refund)
}

func (s *lifecycleSuite) TestCancelRejected() {
	tests := []struct {
		name    string
		status  reservation.Status
		caller  func() uuid.UUID
		lockErr error
		wantErr error
	}{
		{
			name:    "unknown reservation",
			lockErr: infra.WrapRepoErr("reservation", nil, infra.KindNotFound),
			caller:  func() uuid.UUID { return s.owner },
			wantErr: commands.ErrReservationNotFound,
		},
		{
			name:    "another user",
			status:  reservation.StatusConfirmed,
			caller:  uuid.New,
			wantErr: commands.ErrReservationForbidden,
		},
		{
			name:    "active reservation",
			status:  reservation.StatusActive,
			caller:  func() uuid.UUID { return s.owner },
			wantErr: reservation.ErrInvalidTransition,
		},
		{
			name:    "already cancelled",
			status:  reservation.StatusCancelled,
			caller:  func() uuid.UUID { return s.owner },
			wantErr: reservation.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.lockErr != nil {
				s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(nil, tt.lockErr)
			} else {
				s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(tt.status), nil)
			}
			s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			s.gateway.EXPECT().Refund(gomock.Any(), gomock.Any()).Times(0)

			_, err := s.sut.Cancel(context.Background(), tt.caller(), testReservationID, "")

			s.ErrorIs(err, tt.wantErr)
		})
	}
}

func (s *lifecycleSuite) TestStartAndComplete() {
	s.Run("start confirmed", func() {
		s.SetupTest()
		s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusConfirmed), nil)
		s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), reservation.StatusConfirmed).Return(nil)
		s.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		s.NoError(s.sut.Start(context.Background(), testReservationID))
	})

	s.Run("start pending is refused", func() {
		s.SetupTest()
		s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusPending), nil)

		s.ErrorIs(s.sut.Start(context.Background(), testReservationID), reservation.ErrInvalidTransition)
	})

	s.Run("complete active releases vehicle", func() {
		s.SetupTest()
		s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusActive), nil)
		s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), reservation.StatusActive).Return(nil)
		s.expectRelease()

		s.NoError(s.sut.Complete(context.Background(), testReservationID))
	})

	s.Run("vehicle moved elsewhere is tolerated", func() {
		s.SetupTest()
		s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusConfirmed), nil)
		s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.vehicles.EXPECT().Transition(gomock.Any(), gomock.Any(), testVehicleID, gomock.Any(), vehicle.StatusAvailable).
			Return(infra.WrapRepoErr("vehicle status", nil, infra.KindConflict))

		s.NoError(s.sut.Complete(context.Background(), testReservationID))
	})

	s.Run("update failure surfaces", func() {
		s.SetupTest()
		boom := errors.New("connection reset")
		s.reservations.EXPECT().LockByID(gomock.Any(), gomock.Any(), testReservationID).Return(s.reservationIn(reservation.StatusActive), nil)
		s.reservations.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

		s.ErrorIs(s.sut.Complete(context.Background(), testReservationID), boom)
	})
}
