package components

import (
	"rentcar-backend/internal/handler"
	"rentcar-backend/internal/handler/api"
	"rentcar-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, res *api.ReservationHandler, wh *api.WebhookHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Reservation: res, Webhook: wh}
		},
	),
	fx.Invoke(handler.NewRouter),
)
