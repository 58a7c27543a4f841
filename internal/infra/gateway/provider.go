package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	authPath       = "/payment/auth"
	refundPath     = "/payment/refund"
	statusSuccess  = "success"
	authScheme     = "IYZWSv2"
	defaultLocale  = "en"
	maxBodyBytes   = 1 << 20
	fallbackCode   = "UNKNOWN"
	fallbackHolder = "Card Holder"
)

var ErrProviderUnavailable = errs.New("payment provider unavailable")

// Provider talks to an iyzico-compatible card processing API.
type Provider struct {
	baseURL   string
	apiKey    string
	secretKey string
	currency  string
	client    *http.Client
}

func NewProvider(cfg config.GatewayConfig) *Provider {
	return &Provider{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type providerCard struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	CVC            string `json:"cvc"`
	RegisterCard   int    `json:"registerCard"`
}

type providerBuyer struct {
	ID string `json:"id"`
}

type authRequest struct {
	Locale         string        `json:"locale"`
	ConversationID string        `json:"conversationId"`
	Price          string        `json:"price"`
	PaidPrice      string        `json:"paidPrice"`
	Currency       string        `json:"currency"`
	Installment    int           `json:"installment"`
	BasketID       string        `json:"basketId"`
	PaymentChannel string        `json:"paymentChannel"`
	PaymentGroup   string        `json:"paymentGroup"`
	PaymentCard    providerCard  `json:"paymentCard"`
	Buyer          providerBuyer `json:"buyer"`
}

type refundRequest struct {
	Locale               string `json:"locale"`
	ConversationID       string `json:"conversationId"`
	PaymentTransactionID string `json:"paymentTransactionId"`
	Price                string `json:"price"`
	Currency             string `json:"currency"`
}

type providerResponse struct {
	Status       string `json:"status"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	PaymentID    string `json:"paymentId"`
}

func (p *Provider) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	card := providerCard{
		CardHolderName: fallbackHolder,
		CardNumber:     DefaultTestCard,
	}
	if req.Card != nil {
		card = providerCard{
			CardHolderName: req.Card.HolderName,
			CardNumber:     cleanCardNumber(req.Card.Number),
			ExpireMonth:    req.Card.ExpireMonth,
			ExpireYear:     req.Card.ExpireYear,
			CVC:            req.Card.CVC,
		}
	}

	price := formatMinor(req.Amount)
	body := authRequest{
		Locale:         defaultLocale,
		ConversationID: strconv.FormatInt(req.ReservationID, 10),
		Price:          price,
		PaidPrice:      price,
		Currency:       p.currency,
		Installment:    1,
		BasketID:       fmt.Sprintf("RES%d", req.ReservationID),
		PaymentChannel: "WEB",
		PaymentGroup:   "PRODUCT",
		PaymentCard:    card,
		Buyer:          providerBuyer{ID: req.BuyerID},
	}

	resp, err := p.post(ctx, authPath, body)
	if err != nil {
		return shared.ChargeResult{}, err
	}

	if resp.Status != statusSuccess {
		slog.WarnContext(ctx, "provider declined charge",
			"reservation_id", req.ReservationID,
			"error_code", resp.ErrorCode)
		return shared.ChargeResult{
			Message:   firstNonEmpty(resp.ErrorMessage, "Payment failed"),
			ErrorCode: firstNonEmpty(resp.ErrorCode, fallbackCode),
		}, nil
	}

	slog.InfoContext(ctx, "provider approved charge", "reservation_id", req.ReservationID, "transaction_id", resp.PaymentID)
	return shared.ChargeResult{Success: true, TransactionID: resp.PaymentID, Message: "Payment approved"}, nil
}

func (p *Provider) Refund(ctx context.Context, req shared.RefundRequest) (shared.RefundResult, error) {
	body := refundRequest{
		Locale:               defaultLocale,
		ConversationID:       req.TransactionID,
		PaymentTransactionID: req.TransactionID,
		Price:                formatMinor(req.Amount),
		Currency:             p.currency,
	}

	resp, err := p.post(ctx, refundPath, body)
	if err != nil {
		return shared.RefundResult{}, err
	}
	if resp.Status != statusSuccess {
		return shared.RefundResult{
			Message:   firstNonEmpty(resp.ErrorMessage, "Refund failed"),
			ErrorCode: firstNonEmpty(resp.ErrorCode, fallbackCode),
		}, nil
	}
	return shared.RefundResult{Success: true, Message: "Refund approved"}, nil
}

func (p *Provider) post(ctx context.Context, path string, body any) (*providerResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "encode provider request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "build provider request")
	}
	rnd := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-iyzi-rnd", rnd)
	httpReq.Header.Set("Authorization", p.authorization(rnd, path, payload))

	res, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "call provider"), ErrProviderUnavailable)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "read provider response"), ErrProviderUnavailable)
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return nil, errs.Mark(errs.New(fmt.Sprintf("provider returned status %d", res.StatusCode)), ErrProviderUnavailable)
	}

	var out providerResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode provider response"), ErrProviderUnavailable)
	}
	return &out, nil
}

// authorization builds the IYZWSv2 header: HMAC-SHA256 over random key, uri path and body.
func (p *Provider) authorization(rnd, path string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(p.secretKey))
	mac.Write([]byte(rnd + path + string(payload)))
	signature := hex.EncodeToString(mac.Sum(nil))

	params := "apiKey:" + p.apiKey + "&randomKey:" + rnd + "&signature:" + signature
	return authScheme + " " + base64.StdEncoding.EncodeToString([]byte(params))
}

func formatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
