//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"rentcar-backend/internal/domain/user"
	"rentcar-backend/internal/handler/middleware"
	"rentcar-backend/internal/pkg/jwt"
	"rentcar-backend/internal/usecase"
	"rentcar-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService))
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID.String(), "role": actor.Role})
	}

	router.GET("/me", auth.RequireAuth(), whoami)
	router.GET("/ops", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator), whoami)
	return router
}

func TestRequireAuth(t *testing.T) {
	jwtService := jwt.NewService("middleware-test-secret", 15*time.Minute, time.Hour)
	router := newAuthRouter(t, jwtService)
	userID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "not-a-jwt")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, err := jwtService.GenerateRefreshToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, refresh)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("someone-else", 15*time.Minute, time.Hour)
		token, err := other.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid customer token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		var body map[string]string
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, token)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["userId"])
		assert.Equal(t, "customer", body["role"])
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	jwtService := jwt.NewService("middleware-test-secret", 15*time.Minute, time.Hour)
	router := newAuthRouter(t, jwtService)

	tests := []struct {
		role user.Role
		want int
	}{
		{role: user.RoleCustomer, want: http.StatusForbidden},
		{role: user.RoleOperator, want: http.StatusOK},
		{role: user.RoleAdmin, want: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			token, err := jwtService.GenerateToken(uuid.New(), tc.role)
			require.NoError(t, err)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/ops", nil, token)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
