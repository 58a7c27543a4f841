//go:build unit

package user_test

import (
	"testing"
	"time"

	"rentcar-backend/internal/domain/user"
	"rentcar-backend/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cmpOpts = []cmp.Option{
		cmp.AllowUnexported(user.User{}, user.Email{}, user.Phone{}),
		cmpopts.IgnoreFields(user.User{}, "id"),
		cmpopts.EquateEmpty(),
	}
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("new user is an active customer", func(t *testing.T) {

		actual, err := builder.NewUserBuilder().BuildDomain(now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("test@example.com")
		phone, _ := user.NewPhone("+905551112233")
		expected := user.NewUser(email, phone, "Test User", "hashed_password", now)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, user.RoleCustomer, actual.Role())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "mixed case is accepted",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  Driver@Example.COM ") },
			},
			{
				name:   "empty",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "no domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "no at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("phone", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "international",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("+905551112233") },
			},
			{
				name:   "with separators",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("(0555) 111-22-33") },
			},
			{
				name:   "too short",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("12345") },
				errIs:  user.ErrInvalidPhone,
			},
			{
				name:   "letters",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("call-me-maybe") },
				errIs:  user.ErrInvalidPhone,
			},
		})
	})

	t.Run("role", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "customer",
				mutate: func(b *builder.UserBuilder) { b.WithRole("customer") },
			},
			{
				name:   "operator",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
			},
			{
				name:   "admin",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("viewer") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})
}

func TestNormalizedValues(t *testing.T) {
	email, err := user.NewEmail("  Driver@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "driver@example.com", email.Value())

	phone, err := user.NewPhone("+90 (555) 111-22-33")
	require.NoError(t, err)
	assert.Equal(t, "+905551112233", phone.Value())

	_, err = user.NewPassword("short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain(now)

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
