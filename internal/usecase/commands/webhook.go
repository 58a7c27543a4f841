package commands

import (
	"context"
	"log/slog"

	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/domain/webhook"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/usecase/shared"
)

//go:generate mockgen -source=webhook.go -destination=../../../tests/mock/commands/webhook_mock.go -package=commandsmock

const refundReasonWebhook = "Webhook: Refund"

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeIgnored Outcome = "ignored"
	OutcomeDropped Outcome = "dropped"
)

type WebhookCommands interface {
	Reconcile(ctx context.Context, raw webhook.RawEvent) (Outcome, error)
}

type webhookCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewWebhookCommands(uow shared.UnitOfWork) WebhookCommands {
	return &webhookCommandsImpl{uow: uow}
}

// Reconcile applies a provider notification to the matching payment. Deliveries are not
// deduplicated; applying the same event twice leaves the payment in the same state.
func (w *webhookCommandsImpl) Reconcile(ctx context.Context, raw webhook.RawEvent) (Outcome, error) {
	ev, err := webhook.Normalize(raw)
	if err != nil {
		slog.WarnContext(ctx, "webhook rejected", "error", err)
		return OutcomeDropped, err
	}

	var outcome shared.PaymentOutcome
	switch ev.Kind {
	case webhook.KindRefund:
		outcome = shared.PaymentOutcome{
			IsSuccessful:  false,
			Status:        payment.StatusRefunded,
			FailureReason: refundReasonWebhook,
		}
	case webhook.KindPaymentSucceeded:
		outcome = shared.PaymentOutcome{
			IsSuccessful: true,
			Status:       payment.StatusCompleted,
		}
	case webhook.KindUnknown:
		slog.WarnContext(ctx, "webhook event type not handled",
			"transaction_id", ev.TransactionID,
			"event_type", ev.RawType,
			"status", ev.Status)
		return OutcomeIgnored, nil
	}

	result := OutcomeApplied
	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = OutcomeApplied
		p, err := tx.Payments().LockByTransactionID(ctx, tx.DB(), ev.TransactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				result = OutcomeDropped
				return nil
			}
			return err
		}
		return tx.Payments().UpdateOutcome(ctx, tx.DB(), p.ID(), outcome)
	})
	if err != nil {
		return "", err
	}

	if result == OutcomeDropped {
		slog.WarnContext(ctx, "webhook for unknown payment dropped",
			"transaction_id", ev.TransactionID,
			"event_kind", ev.Kind.String())
		return result, nil
	}

	slog.InfoContext(ctx, "webhook applied",
		"transaction_id", ev.TransactionID,
		"event_kind", ev.Kind.String())
	return result, nil
}
