package components

import (
	"context"

	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/usecase"
	"rentcar-backend/internal/usecase/commands"
	"rentcar-backend/internal/usecase/fraud"
	"rentcar-backend/internal/usecase/queries"
	"rentcar-backend/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseFraudModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(registerHoldReaper),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.SagaOptions {
		return commands.SagaOptions{
			GatewayTimeout:        cfg.Gateway.Timeout,
			RequireIdempotencyKey: cfg.Idempotency.RequireKey,
			BlockHighRisk:         cfg.Risk.BlockHigh,
		}
	},
)

var usecaseFraudModule = fx.Module("usecase/fraud",
	fx.Provide(
		fx.Annotate(
			fraud.NewUoWAlertWriter,
			fx.As(new(commands.FraudAlertWriter)),
			fx.As(new(fraud.AlertWriter)),
		),
		fx.Annotate(
			func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *fraud.RiskAssessor {
				return fraud.NewRiskAssessor(uow.CommandReads(), clk, cfg.Risk.ExpensiveDailyPrice)
			},
			fx.As(new(commands.RiskAssessor)),
		),
		fx.Annotate(
			func(counter fraud.AttemptCounter, clk clock.Clock, cfg config.Config) *fraud.LoginThrottle {
				return fraud.NewLoginThrottle(counter, clk, cfg.Risk.LoginWindow, cfg.Risk.LoginMaxAttempts)
			},
			fx.As(new(commands.LoginThrottle)),
		),
		fx.Annotate(
			func(uow shared.UnitOfWork, alerts fraud.AlertWriter, clk clock.Clock, cfg config.Config) *fraud.RegistrationGuard {
				return fraud.NewRegistrationGuard(uow.CommandReads(), alerts, clk, cfg.Risk.RegistrationWindow, cfg.Risk.RegistrationMaxCount)
			},
			fx.As(new(commands.RegistrationGuard)),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewWebhookCommands,
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *commands.HoldReaper {
			return commands.NewHoldReaper(uow, clk, cfg.Saga.HoldTTL, cfg.Saga.HoldReapInterval)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func registerHoldReaper(lc fx.Lifecycle, reaper *commands.HoldReaper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			reaper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return reaper.Stop(ctx)
		},
	})
}
