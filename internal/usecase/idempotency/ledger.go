// Package idempotency stores one replayable result per client key across two tiers.
// The fast tier is an accelerator only; the durable tier is authoritative.
package idempotency

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"rentcar-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/idempotency/ledger_mock.go -package=idempotencymock

var (
	ErrKeyRequired  = errs.New("idempotency key required")
	ErrKeyTooLong   = errs.New("idempotency key exceeds 255 characters")
	ErrLookupFailed = errs.New("idempotency lookup failed")
	ErrCommitFailed = errs.New("idempotency commit failed")
)

const (
	DefaultRecordTTL = 24 * time.Hour
	maxKeyLength     = 255
)

type Record struct {
	Key           string          `json:"key"`
	UserID        uuid.UUID       `json:"user_id"`
	Request       json.RawMessage `json:"request"`
	Response      json.RawMessage `json:"response"`
	Success       bool            `json:"success"`
	FailedStep    string          `json:"failed_step,omitempty"`
	ReservationID *int64          `json:"reservation_id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FastStore returns (nil, nil) on a miss.
type FastStore interface {
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, rec *Record, ttl time.Duration) error
}

// DurableStore returns (nil, nil) on a miss. Insert reports false when the key already exists.
type DurableStore interface {
	Find(ctx context.Context, key string) (*Record, error)
	Insert(ctx context.Context, rec *Record) (bool, error)
}

type Ledger struct {
	durable DurableStore
	fast    FastStore
	ttl     time.Duration
}

// NewLedger accepts a nil fast tier.
func NewLedger(durable DurableStore, fast FastStore, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	return &Ledger{durable: durable, fast: fast, ttl: ttl}
}

func (l *Ledger) Lookup(ctx context.Context, key string) (*Record, bool, error) {
	if l.fast != nil {
		rec, err := l.fast.Get(ctx, key)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "idempotency fast tier read failed", "idempotency_key", key, "error", err)
		case rec != nil:
			return rec, true, nil
		}
	}

	rec, err := l.durable.Find(ctx, key)
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "durable lookup"), ErrLookupFailed)
	}
	if rec == nil {
		return nil, false, nil
	}

	l.writeFast(ctx, rec, "idempotency read-repair failed")
	return rec, true, nil
}

// Commit writes the durable tier first. A key that already exists keeps its first record.
func (l *Ledger) Commit(ctx context.Context, rec *Record) error {
	inserted, err := l.durable.Insert(ctx, rec)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "durable insert"), ErrCommitFailed)
	}
	if !inserted {
		slog.WarnContext(ctx, "idempotency key already committed, keeping first record", "idempotency_key", rec.Key)
		return nil
	}

	l.writeFast(ctx, rec, "idempotency fast tier write failed")
	return nil
}

func (l *Ledger) writeFast(ctx context.Context, rec *Record, msg string) {
	if l.fast == nil {
		return
	}
	if err := l.fast.Set(ctx, rec, l.ttl); err != nil {
		slog.WarnContext(ctx, msg, "idempotency_key", rec.Key, "error", err)
	}
}

// ResolveKey returns the supplied key, or a fresh one when none was sent and keys are optional.
func ResolveKey(supplied string, required bool) (key string, generated bool, err error) {
	key = strings.TrimSpace(supplied)
	if key == "" {
		if required {
			return "", false, ErrKeyRequired
		}
		return uuid.NewString(), true, nil
	}
	if len(key) > maxKeyLength {
		return "", false, ErrKeyTooLong
	}
	return key, false, nil
}
