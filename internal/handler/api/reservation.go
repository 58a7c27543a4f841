package api

import (
	"net/http"
	"strconv"

	"rentcar-backend/internal/domain/reservation"
	reqdto "rentcar-backend/internal/handler/dto/request"
	resdto "rentcar-backend/internal/handler/dto/response"
	"rentcar-backend/internal/handler/middleware"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	idempotencyKeyHeader      = "Idempotency-Key"
	idempotencyReplayedHeader = "Idempotency-Replayed"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: reservationCommands,
		queries:  reservationQueries,
	}
}

// @Summary Create reservation with payment
// @Description Books a vehicle, charges the card and confirms the reservation in one idempotent call
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client key; generated when omitted"
// @Param request body reqdto.CreateReservationWithPaymentRequest true "Reservation and payment"
// @Success 201 {object} resdto.SagaResponse
// @Failure 402 {object} resdto.SagaResponse
// @Failure 422 {object} resdto.SagaResponse
// @Failure 500 {object} resdto.SagaResponse
// @Router /reservations/with-payment [post]
func (h *ReservationHandler) CreateWithPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationWithPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, resdto.SagaResponse{
			Message:        "Invalid request: " + err.Error(),
			Steps:          []string{},
			FailedStep:     commands.StepRequestValidation,
			IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
		})
		return
	}
	if key := c.GetHeader(idempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	result, err := h.commands.CreateReservationWithPayment(c.Request.Context(), req, userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, resdto.SagaResponse{
			Message:        "Reservation could not be processed",
			Steps:          []string{},
			FailedStep:     commands.StepRequestValidation,
			IdempotencyKey: req.IdempotencyKey,
		})
		return
	}

	if result.Replayed {
		c.Header(idempotencyReplayedHeader, "true")
	}
	c.JSON(sagaStatus(result), resdto.FromSagaResult(result))
}

func sagaStatus(r *commands.SagaResult) int {
	switch err := r.Err(); {
	case err == nil:
		return http.StatusCreated
	case errs.Is(err, commands.ErrGatewayFailure):
		return http.StatusPaymentRequired
	case errs.Is(err, commands.ErrPersistenceFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// @Summary List own reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	views, next, err := h.queries.ListByUser(c.Request.Context(), userID, &queries.Cursor{After: req.After}, req.Limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid cursor",
			})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationPage(views, next))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservation payments
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/payments [get]
func (h *ReservationHandler) ListPayments(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	views, err := h.queries.ListPayments(c.Request.Context(), actor, id)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

// @Summary Cancel reservation
// @Description Cancels a pending or confirmed reservation and refunds its charge
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.CancelResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	result, err := h.commands.Cancel(c.Request.Context(), actor.UserID, id, req.Reason)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Start rental
// @Tags reservations
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/start [post]
func (h *ReservationHandler) Start(c *gin.Context) {
	_, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if err := h.commands.Start(c.Request.Context(), id); err != nil {
		writeLifecycleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Complete rental
// @Tags reservations
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	_, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if err := h.commands.Complete(c.Request.Context(), id); err != nil {
		writeLifecycleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) actorAndID(c *gin.Context) (queries.Actor, int64, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return queries.Actor{}, 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return queries.Actor{}, 0, false
	}
	return actor, id, true
}

func writeQueryError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errs.Is(err, queries.ErrReservationAccess):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errs.Is(err, commands.ErrReservationForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
	case errs.Is(err, reservation.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation cannot move to the requested status",
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
