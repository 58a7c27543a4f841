package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingTransactionID = errors.New("payment id is missing")
	ErrMalformedID          = errors.New("payment id must be a string or a number")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindRefund
	KindPaymentSucceeded
)

func (k Kind) String() string {
	switch k {
	case KindRefund:
		return "refund"
	case KindPaymentSucceeded:
		return "payment_succeeded"
	default:
		return "unknown"
	}
}

// ProviderID accepts both JSON numbers and strings. Providers have sent both over time.
type ProviderID string

func (id *ProviderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrMalformedID
		}
		*id = ProviderID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrMalformedID
	}
	*id = ProviderID(n.String())
	return nil
}

// RawEvent is the payload as delivered. Identifier fields are aliases of one another.
type RawEvent struct {
	PaymentID             ProviderID `json:"paymentId"`
	IyziPaymentID         ProviderID `json:"iyziPaymentId"`
	SnakePaymentID        ProviderID `json:"payment_id"`
	PaymentConversationID string     `json:"paymentConversationId"`
	IyziReferenceCode     string     `json:"iyziReferenceCode"`
	IyziEventType         string     `json:"iyziEventType"`
	EventType             string     `json:"eventType"`
	IyziEventTime         *int64     `json:"iyziEventTime"`
	Status                string     `json:"status"`
	MerchantID            ProviderID `json:"merchantId"`
}

// Event is the canonical record every classification works on.
type Event struct {
	TransactionID  string
	Kind           Kind
	RawType        string
	Status         string
	ConversationID string
	ReferenceCode  string
	OccurredAt     *time.Time
}
