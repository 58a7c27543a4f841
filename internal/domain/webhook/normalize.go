package webhook

import (
	"strings"
	"time"
)

const statusSuccess = "success"

func Normalize(raw RawEvent) (Event, error) {
	txID := firstNonEmpty(string(raw.PaymentID), string(raw.IyziPaymentID), string(raw.SnakePaymentID))
	if txID == "" {
		return Event{}, ErrMissingTransactionID
	}

	rawType := firstNonEmpty(raw.IyziEventType, raw.EventType)
	status := strings.ToLower(strings.TrimSpace(raw.Status))

	ev := Event{
		TransactionID:  txID,
		Kind:           classify(rawType, status),
		RawType:        rawType,
		Status:         status,
		ConversationID: strings.TrimSpace(raw.PaymentConversationID),
		ReferenceCode:  strings.TrimSpace(raw.IyziReferenceCode),
	}
	if raw.IyziEventTime != nil && *raw.IyziEventTime > 0 {
		at := time.UnixMilli(*raw.IyziEventTime).UTC()
		ev.OccurredAt = &at
	}
	return ev, nil
}

func classify(rawType, status string) Kind {
	tokens := tokenize(rawType)
	switch {
	case tokens["refund"]:
		return KindRefund
	case tokens["payment"], tokens["auth"], status == statusSuccess:
		return KindPaymentSucceeded
	default:
		return KindUnknown
	}
}

func tokenize(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' ' || r == ':'
	})
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f] = true
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
