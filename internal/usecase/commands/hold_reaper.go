package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rentcar-backend/internal/domain/vehicle"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/usecase/shared"
)

// HoldReaper releases vehicles held by bookings that never reached Confirming,
// typically because the process died between the two saga transactions.
type HoldReaper struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	ttl      time.Duration
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewHoldReaper(uow shared.UnitOfWork, clock clock.Clock, ttl, interval time.Duration) *HoldReaper {
	return &HoldReaper{
		uow:      uow,
		clock:    clock,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// ReapOnce returns the number of holds released.
func (r *HoldReaper) ReapOnce(ctx context.Context) (int, error) {
	before := r.clock.Now().Add(-r.ttl)
	released := 0

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		released = 0
		holds, err := tx.Reservations().DeleteStaleHolds(ctx, tx.DB(), before)
		if err != nil {
			return err
		}
		for _, h := range holds {
			err := tx.Vehicles().Transition(ctx, tx.DB(), h.VehicleID,
				[]vehicle.Status{vehicle.StatusReserved}, vehicle.StatusAvailable)
			if err != nil && !infra.IsKind(err, infra.KindConflict) {
				return err
			}
			slog.InfoContext(ctx, "stale hold released",
				"reservation_id", h.ReservationID,
				"vehicle_id", h.VehicleID)
			released++
		}
		return nil
	})
	return released, err
}

func (r *HoldReaper) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				if _, err := r.ReapOnce(context.Background()); err != nil {
					slog.Error("hold reaper pass failed", "error", err)
				}
			}
		}
	}()
}

// Stop is safe to call more than once.
func (r *HoldReaper) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stop) })
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
