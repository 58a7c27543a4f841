package bootstrap

import (
	"time"

	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	accessTokenDuration, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_ACCESS_TOKEN_DURATION")
	}

	refreshTokenDuration, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_REFRESH_TOKEN_DURATION")
	}

	return jwt.NewService(cfg.JWT.Secret, accessTokenDuration, refreshTokenDuration), nil
}
