//go:build unit || e2e

package builder

import (
	"time"

	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/infra/dbq"
	reqdto "rentcar-backend/internal/handler/dto/request"
	"rentcar-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FullName     string
	Password     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Phone:        "+905551112233",
		FullName:     "Test User",
		Password:     "password123",
		PasswordHash: "hashed_password",
		Role:         string(user.RoleCustomer),
		IsActive:     true,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain(now time.Time) (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	phone, err := user.NewPhone(u.Phone)
	if err != nil {
		return nil, err
	}

	if _, err := user.NewRole(u.Role); err != nil {
		return nil, err
	}

	return user.NewUser(email, phone, u.FullName, u.PasswordHash, now), nil
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func (u *UserBuilder) BuildInfra() dbq.Users {
	return dbq.Users{
		ID:           u.ID,
		Email:        u.Email,
		Phone:        u.Phone,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    pgtype.Timestamptz{Time: u.CreatedAt, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: u.CreatedAt, Valid: true},
	}
}

func (u *UserBuilder) BuildRegisterRequest() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    u.Email,
		Phone:    u.Phone,
		FullName: u.FullName,
		Password: u.Password,
	}
}

// BuildLoginRequest pairs the builder's email with its plaintext password.
func (u *UserBuilder) BuildLoginRequest() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: u.Email, Password: u.Password}
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithPhone(phone string) *UserBuilder {
	u.Phone = phone
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
