package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"rentcar-backend/internal/domain/webhook"
	"rentcar-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	commands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{commands: webhookCommands}
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Outcome string `json:"outcome,omitempty"`
}

// @Summary Payment provider webhook
// @Description Reconciles a provider notification. Always answers 200 so the provider stops redelivering.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body webhook.RawEvent true "Provider payload"
// @Success 200 {object} webhookResponse
// @Router /webhooks/payments [post]
func (h *WebhookHandler) Payments(c *gin.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(c.Request.Context(), "webhook handler panicked", "error", fmt.Sprint(rec))
			c.JSON(http.StatusOK, webhookResponse{Success: false, Message: "webhook processing failed"})
		}
	}()

	// Decoded leniently: providers add fields without notice.
	var raw webhook.RawEvent
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, &raw)
	}
	if err != nil {
		slog.WarnContext(c.Request.Context(), "webhook payload unreadable", "error", err)
		c.JSON(http.StatusOK, webhookResponse{Success: false, Message: "invalid payload"})
		return
	}

	outcome, err := h.commands.Reconcile(c.Request.Context(), raw)
	if err != nil {
		msg := "webhook processing failed"
		if outcome == commands.OutcomeDropped {
			msg = err.Error()
		} else {
			slog.ErrorContext(c.Request.Context(), "webhook reconciliation failed", "error", err)
		}
		c.JSON(http.StatusOK, webhookResponse{Success: false, Message: msg, Outcome: string(outcome)})
		return
	}

	c.JSON(http.StatusOK, webhookResponse{Success: true, Message: "webhook processed", Outcome: string(outcome)})
}
