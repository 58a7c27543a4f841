package repository

import (
	"context"

	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db dbq.DBTX, arg dbq.CreateUserParams) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, db dbq.DBTX, id uuid.UUID) error
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

func (r *UserRepository) Create(ctx context.Context, tx dbq.DBTX, u *user.User) (uuid.UUID, error) {
	id, err := r.queries.CreateUser(ctx, tx, dbq.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Phone:        u.Phone().Value(),
		FullName:     u.FullName(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx dbq.DBTX, userID uuid.UUID) error {
	err := r.queries.UpdateLastLogin(ctx, tx, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
