package usecase

import (
	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidAccessToken = errs.New("invalid access token")

// TokenValidator resolves an access token into the caller's identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidAccessToken)
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, "", errs.Wrap(ErrInvalidAccessToken, "token has no subject")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidAccessToken)
	}

	return claims.UserID, role, nil
}
