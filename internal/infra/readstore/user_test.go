//go:build unit

package readstore

import (
	"context"
	"testing"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) GetUserByEmail(ctx context.Context, db dbq.DBTX, email string) (dbq.Users, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(dbq.Users), args.Error(1)
}

func (m *MockUserReadQueries) GetUserByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(dbq.Users), args.Error(1)
}

func TestFindByEmail(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()
	inactiveUser := builder.NewUserBuilder().WithEmail("inactive@example.com").AsInactive().BuildInfra()

	tests := []struct {
		name       string
		email      string
		mockReturn dbq.Users
		mockError  error
		wantHash   string
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success - active user",
			email:      testUser.Email,
			mockReturn: testUser,
			wantHash:   testUser.PasswordHash,
		},
		{
			name:       "success - inactive user (for validation)",
			email:      inactiveUser.Email,
			mockReturn: inactiveUser,
			wantHash:   inactiveUser.PasswordHash,
		},
		{
			name:      "user not found",
			email:     "notfound@example.com",
			mockError: pgx.ErrNoRows,
			wantKind:  infra.KindNotFound,
		},
		{
			name:      "database error",
			email:     testUser.Email,
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("GetUserByEmail", mock.Anything, mock.Anything, tt.email).Return(tt.mockReturn, tt.mockError)

			readStore := NewUserReadStore(mockQueries, nil)

			view, hash, err := readStore.FindByEmail(context.Background(), tt.email)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.Empty(t, hash)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, view) {
					assert.Equal(t, tt.email, view.Email)
					assert.Equal(t, tt.mockReturn.IsActive, view.IsActive)
				}
				assert.Equal(t, tt.wantHash, hash)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestFindByID(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()

	tests := []struct {
		name       string
		mockReturn dbq.Users
		mockError  error
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success",
			mockReturn: testUser,
		},
		{
			name:      "user not found",
			mockError: pgx.ErrNoRows,
			wantKind:  infra.KindNotFound,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("GetUserByID", mock.Anything, mock.Anything, testUser.ID).Return(tt.mockReturn, tt.mockError)

			view, err := NewUserReadStore(mockQueries, nil).FindByID(context.Background(), testUser.ID)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, view) {
					assert.Equal(t, testUser.ID, view.ID)
					assert.Equal(t, testUser.Phone, view.Phone)
					assert.Nil(t, view.LastLogin)
					assert.True(t, view.CreatedAt.Equal(testUser.CreatedAt.Time))
				}
			}

			mockQueries.AssertExpectations(t)
		})
	}
}
