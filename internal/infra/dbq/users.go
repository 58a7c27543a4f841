package dbq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, phone, full_name, password_hash, role, is_active, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (Users, error) {
	var u Users
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Phone,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const createUser = `
INSERT INTO users (id, email, phone, full_name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id
`

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.Phone,
		arg.FullName,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	return scanUser(db.QueryRow(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	return scanUser(db.QueryRow(ctx, getUserByEmail, email))
}

const userExistsByEmailOrPhone = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`

func (q *Queries) UserExistsByEmailOrPhone(ctx context.Context, db DBTX, email, phone string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, userExistsByEmailOrPhone, email, phone).Scan(&exists)
	return exists, err
}

const countUsersCreatedSince = `SELECT COUNT(*) FROM users WHERE created_at > $1`

func (q *Queries) CountUsersCreatedSince(ctx context.Context, db DBTX, since time.Time) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countUsersCreatedSince, since).Scan(&n)
	return n, err
}

const updateLastLogin = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

func (q *Queries) UpdateLastLogin(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, updateLastLogin, id)
	return err
}
