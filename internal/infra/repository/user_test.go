//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockDB stands in for the transaction handed to repositories.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *mockDB) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type MockUserWriteQueries struct {
	mock.Mock
}

func (m *MockUserWriteQueries) UpdateLastLogin(ctx context.Context, db dbq.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *MockUserWriteQueries) CreateUser(ctx context.Context, db dbq.DBTX, arg dbq.CreateUserParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()

	tests := []struct {
		name      string
		mockError error
		wantError bool
	}{
		{
			name:      "success",
			mockError: nil,
			wantError: false,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := new(mockDB)
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("UpdateLastLogin", mock.Anything, tx, testUserID).Return(tt.mockError)

			repo := NewUserRepository(mockQueries)

			err := repo.UpdateLastLogin(context.Background(), tx, testUserID)

			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestCreateUser(t *testing.T) {
	email, err := user.NewEmail("new@example.com")
	require.NoError(t, err)
	phone, err := user.NewPhone("+905551112233")
	require.NoError(t, err)
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	u := user.NewUser(email, phone, "New Customer", "hash", createdAt)

	t.Run("maps the domain user into insert params", func(t *testing.T) {
		tx := new(mockDB)
		mockQueries := new(MockUserWriteQueries)
		mockQueries.On("CreateUser", mock.Anything, tx, mock.MatchedBy(func(p dbq.CreateUserParams) bool {
			return p.ID == u.ID() &&
				p.Email == "new@example.com" &&
				p.Phone == "+905551112233" &&
				p.Role == "customer" &&
				p.IsActive &&
				p.CreatedAt.Time.Equal(createdAt)
		})).Return(u.ID(), nil)

		id, err := NewUserRepository(mockQueries).Create(context.Background(), tx, u)

		require.NoError(t, err)
		assert.Equal(t, u.ID(), id)
		mockQueries.AssertExpectations(t)
	})

	t.Run("unique violation is classified as duplicate key", func(t *testing.T) {
		tx := new(mockDB)
		mockQueries := new(MockUserWriteQueries)
		mockQueries.On("CreateUser", mock.Anything, tx, mock.Anything).
			Return(uuid.Nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := NewUserRepository(mockQueries).Create(context.Background(), tx, u)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}
