//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"rentcar-backend/internal/infra"
	"rentcar-backend/internal/usecase/queries"
	"rentcar-backend/tests/common/builder"
	queriesmock "rentcar-backend/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetCurrentUser(t *testing.T) {
	active := builder.NewUserBuilder().BuildReadModel()
	inactive := builder.NewUserBuilder().AsInactive().BuildReadModel()

	tests := []struct {
		name    string
		view    *queries.AuthorizedUserView
		repoErr error
		wantErr error
	}{
		{name: "active user", view: active},
		{name: "inactive user", view: inactive, wantErr: queries.ErrUserInactive},
		{name: "not found", repoErr: infra.WrapRepoErr("find user", errors.New("no rows"), infra.KindNotFound), wantErr: queries.ErrUserNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockUserReadStore(ctrl)
			store.EXPECT().FindByID(gomock.Any(), active.ID).Return(tc.view, tc.repoErr)

			got, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), active.ID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.view, got)
		})
	}

	t.Run("store failure is wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		boom := errors.New("connection reset")
		store.EXPECT().FindByID(gomock.Any(), active.ID).Return(nil, boom)

		_, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), active.ID)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "load current user")
	})
}
