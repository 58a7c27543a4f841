package bootstrap

import (
	"rentcar-backend/cmd/bootstrap/components"
	"rentcar-backend/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the environment once; every other module reads config.Config.
var ConfigModule = fx.Module("config", fx.Provide(config.LoadConfig))

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
