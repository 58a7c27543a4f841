package commands

import (
	"context"
	"log/slog"
	"strings"

	"rentcar-backend/internal/domain/user"
	reqdto "rentcar-backend/internal/handler/dto/request"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/pkg/clock"
	"rentcar-backend/internal/pkg/errs"
	"rentcar-backend/internal/pkg/jwt"
	"rentcar-backend/internal/pkg/password"
	"rentcar-backend/internal/usecase/queries"
	"rentcar-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrInvalidRegistration  = errs.New("invalid registration")
	ErrEmailTaken           = errs.New("email or phone already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type RegisterResult struct {
	UserID uuid.UUID
	Email  string
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	hasher     *password.Hasher
	throttle   LoginThrottle
	guard      RegistrationGuard
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	hasher *password.Hasher,
	throttle LoginThrottle,
	guard RegistrationGuard,
	clock clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		hasher:     hasher,
		throttle:   throttle,
		guard:      guard,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegistration)
	}
	phone, err := user.NewPhone(req.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegistration)
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegistration)
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, errs.Mark(errs.New("full name is required"), ErrInvalidRegistration)
	}

	if err := a.guard.Check(ctx, email.Value(), phone.Value()); err != nil {
		return nil, err
	}

	hash, err := a.hasher.Hash(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	u := user.NewUser(email, phone, fullName, hash, a.clock.Now())
	var id uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Users().Create(ctx, tx.DB(), u)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		// Lost a race with a concurrent registration of the same identity.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", id)
	return &RegisterResult{UserID: id, Email: email.Value()}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	if err := a.throttle.Check(ctx, req.Email); err != nil {
		slog.WarnContext(ctx, "login throttled")
		return nil, err
	}

	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		if errs.Is(err, ErrInvalidCredentials) {
			if rerr := a.throttle.RecordFailure(ctx, req.Email); rerr != nil {
				slog.WarnContext(ctx, "failed to record login failure", "error", rerr)
			}
		}
		return nil, err
	}

	if err := a.throttle.RecordSuccess(ctx, req.Email); err != nil {
		slog.WarnContext(ctx, "failed to reset login attempts", "user_id", view.ID, "error", err)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	pair, err := a.issue(view.ID, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), view.ID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update last login", "user_id", view.ID, "error", err)
	}

	return &LoginResult{UserID: view.ID, TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	return a.issue(claims.UserID, role)
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.jwtService.GenerateToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// validateUser answers ErrInvalidCredentials for unknown emails too, so accounts cannot be enumerated.
func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		a.hasher.CompareDummy(credentials.Password().Value())
		return nil, ErrInvalidCredentials
	}

	if err := a.hasher.Compare(hash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}
