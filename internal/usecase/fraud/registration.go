package fraud

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/usecase/shared"
)

var ErrRegistrationBlocked = errs.New("registration blocked")

type RegistrationSignals interface {
	UserExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type AlertWriter interface {
	WriteAlert(ctx context.Context, alert shared.FraudAlert) error
}

// RegistrationGuard rejects duplicate identities and registration bursts.
type RegistrationGuard struct {
	signals  RegistrationSignals
	alerts   AlertWriter
	clock    clock.Clock
	window   time.Duration
	maxCount int
}

func NewRegistrationGuard(signals RegistrationSignals, alerts AlertWriter, clk clock.Clock, window time.Duration, maxCount int) *RegistrationGuard {
	return &RegistrationGuard{
		signals:  signals,
		alerts:   alerts,
		clock:    clk,
		window:   window,
		maxCount: maxCount,
	}
}

func (g *RegistrationGuard) Check(ctx context.Context, email, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := g.signals.UserExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return errs.Wrap(err, "check existing user")
	}
	if exists {
		return g.block(ctx, email, "email or phone already registered")
	}

	now := g.clock.Now()
	recent, err := g.signals.CountUsersCreatedSince(ctx, now.Add(-g.window))
	if err != nil {
		return errs.Wrap(err, "count recent registrations")
	}
	if recent > g.maxCount {
		return g.block(ctx, email, "registration rate limit exceeded")
	}
	return nil
}

func (g *RegistrationGuard) block(ctx context.Context, email, reason string) error {
	slog.WarnContext(ctx, "registration blocked", "reason", reason)

	alert := shared.FraudAlert{
		Type:      shared.FraudAlertRegistration,
		Email:     email,
		Reason:    reason,
		CreatedAt: g.clock.Now(),
	}
	if err := g.alerts.WriteAlert(ctx, alert); err != nil {
		slog.WarnContext(ctx, "failed to record fraud alert", "error", err)
	}
	return errs.Mark(errs.New(reason), ErrRegistrationBlocked)
}
