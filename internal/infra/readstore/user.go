package readstore

import (
	"context"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
	"rentcar-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Users, error)
	GetUserByEmail(ctx context.Context, db dbq.DBTX, email string) (dbq.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      dbq.DBTX
}

func NewUserReadStore(queries UserReadQueries, db dbq.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return toAuthorizedUserView(row), nil
}

// FindByEmail also returns the password hash for credential checks.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.GetUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return toAuthorizedUserView(row), row.PasswordHash, nil
}

func toAuthorizedUserView(row dbq.Users) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        row.ID,
		Email:     row.Email,
		Phone:     row.Phone,
		FullName:  row.FullName,
		Role:      row.Role,
		IsActive:  row.IsActive,
		LastLogin: pgconv.TimePtrFromPgtype(row.LastLogin),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
