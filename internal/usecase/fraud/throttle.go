package fraud

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/errs"
)

//go:generate mockgen -source=throttle.go -destination=../../../tests/mock/fraud/throttle_mock.go -package=fraudmock

var ErrTooManyAttempts = errs.New("too many login attempts")

// ThrottleError carries how long the caller has to wait. It matches ErrTooManyAttempts.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *ThrottleError) Is(target error) bool {
	return target == ErrTooManyAttempts
}

// AttemptCounter keeps an ordered set of timestamps per key.
// Recent drops entries older than since and returns the rest in ascending order.
type AttemptCounter interface {
	Recent(ctx context.Context, key string, since time.Time) ([]time.Time, error)
	Add(ctx context.Context, key string, at time.Time) error
	Clear(ctx context.Context, key string) error
}

type LoginThrottle struct {
	counter     AttemptCounter
	clock       clock.Clock
	window      time.Duration
	maxAttempts int
}

func NewLoginThrottle(counter AttemptCounter, clk clock.Clock, window time.Duration, maxAttempts int) *LoginThrottle {
	return &LoginThrottle{
		counter:     counter,
		clock:       clk,
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Check fails open when the counter store is unreachable.
func (t *LoginThrottle) Check(ctx context.Context, email string) error {
	now := t.clock.Now()
	attempts, err := t.counter.Recent(ctx, normalizeKey(email), now.Add(-t.window))
	if err != nil {
		slog.WarnContext(ctx, "login throttle unavailable, allowing attempt", "error", err)
		return nil
	}
	if len(attempts) < t.maxAttempts {
		return nil
	}

	retryAfter := attempts[0].Add(t.window).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	slog.WarnContext(ctx, "login blocked by throttle", "attempts", len(attempts), "retry_after", retryAfter)
	return &ThrottleError{RetryAfter: retryAfter}
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if err := t.counter.Add(ctx, normalizeKey(email), t.clock.Now()); err != nil {
		return errs.Wrap(err, "record failed login")
	}
	return nil
}

func (t *LoginThrottle) RecordSuccess(ctx context.Context, email string) error {
	if err := t.counter.Clear(ctx, normalizeKey(email)); err != nil {
		return errs.Wrap(err, "clear login attempts")
	}
	return nil
}

func normalizeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
