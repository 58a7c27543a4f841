// Package gateway holds the card processor adapters.
package gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultTestCard   = "4111111111111111"
	MockTxPrefix      = "MOCK-"
	CodeCardDeclined  = "CARD_DECLINED"
	CodeInsufficient  = "INSUFFICIENT_FUNDS"
	CodeInvalidCVC    = "INVALID_CVC"
	CodeExpiredCard   = "EXPIRED_CARD"
	CodeInvalidCard   = "INVALID_CARD"
	CodeTimeout       = "TIMEOUT"
	CodeRefundRefused = "REFUND_REJECTED"
)

type cardOutcome struct {
	approved bool
	code     string
	message  string
}

var testCards = map[string]cardOutcome{
	"4111111111111111": {approved: true, message: "Payment approved"},
	"5528790010000001": {approved: true, message: "Payment approved"},
	"5406670010000009": {approved: true, message: "Payment approved"},
	"4000000000000002": {code: CodeCardDeclined, message: "Card declined"},
	"4000000000000069": {code: CodeInsufficient, message: "Insufficient funds"},
	"4000000000000127": {code: CodeInvalidCVC, message: "Invalid CVC"},
	"4000000000000119": {code: CodeExpiredCard, message: "Card expired"},
}

// Simulated answers from a fixed card table so runs are reproducible without a provider.
type Simulated struct {
	delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

func (g *Simulated) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	number := DefaultTestCard
	if req.Card != nil && req.Card.Number != "" {
		number = cleanCardNumber(req.Card.Number)
	}

	slog.InfoContext(ctx, "simulated charge started",
		"reservation_id", req.ReservationID,
		"amount", req.Amount,
		"card_last4", last4(number))

	if err := g.wait(ctx); err != nil {
		return shared.ChargeResult{ErrorCode: CodeTimeout, Message: "Payment timed out"}, nil
	}

	outcome, ok := testCards[number]
	if !ok {
		outcome = cardOutcome{code: CodeInvalidCard, message: "Invalid card number"}
	}
	if !outcome.approved {
		slog.WarnContext(ctx, "simulated charge declined", "reservation_id", req.ReservationID, "error_code", outcome.code)
		return shared.ChargeResult{Message: outcome.message, ErrorCode: outcome.code}, nil
	}

	txID := MockTxPrefix + strings.ToUpper(uuid.NewString()[:8])
	slog.InfoContext(ctx, "simulated charge approved", "reservation_id", req.ReservationID, "transaction_id", txID)
	return shared.ChargeResult{Success: true, TransactionID: txID, Message: outcome.message}, nil
}

func (g *Simulated) Refund(ctx context.Context, req shared.RefundRequest) (shared.RefundResult, error) {
	if err := g.wait(ctx); err != nil {
		return shared.RefundResult{ErrorCode: CodeTimeout, Message: "Refund timed out"}, nil
	}
	if !strings.HasPrefix(req.TransactionID, MockTxPrefix) {
		return shared.RefundResult{ErrorCode: CodeRefundRefused, Message: "Unknown transaction"}, nil
	}
	slog.InfoContext(ctx, "simulated refund approved", "transaction_id", req.TransactionID, "amount", req.Amount)
	return shared.RefundResult{Success: true, Message: "Refund approved"}, nil
}

func (g *Simulated) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cleanCardNumber(n string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(n)
}

func last4(n string) string {
	if len(n) < 4 {
		return "****"
	}
	return n[len(n)-4:]
}
