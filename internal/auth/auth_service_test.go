package auth_test

import (
	"context"
	"errors"
	"testing"

	"hr-dashboard/internal/auth"
	authMock "hr-dashboard/internal/auth/mock"
	"hr-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type serviceDeps struct {
	service     auth.Service
	permissions *authMock.MockPermissionSource
	views       *authMock.MockViewResetter
	selections  *authMock.MockSelectionClearer
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	deps := &serviceDeps{
		permissions: authMock.NewMockPermissionSource(ctrl),
		views:       authMock.NewMockViewResetter(ctrl),
		selections:  authMock.NewMockSelectionClearer(ctrl),
	}
	deps.service = auth.NewService(
		deps.permissions,
		deps.views,
		deps.selections,
		[]string{"presence", "main-salary"},
		zap.NewNop(),
	)
	return deps
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("empty role falls back to HR", func(t *testing.T) {
		deps := setupServiceTest(t)
		perms := []domain.PermissionResponse{{Resource: "presence", Action: "read"}}

		deps.permissions.EXPECT().Permissions(domain.RoleHR).Return(perms, nil)

		got, err := deps.service.Me(ctx, "u1", "")
		assert.NoError(t, err)
		assert.Equal(t, auth.MeResponse{UserID: "u1", Role: domain.RoleHR, Permissions: perms}, got)
	})

	t.Run("permission lookup fails", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.permissions.EXPECT().Permissions(domain.RoleFinance).Return(nil, errors.New("enforcer"))

		_, err := deps.service.Me(ctx, "u1", domain.RoleFinance)
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears view state and every selection", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.views.EXPECT().Reset(ctx, "u1").Return(nil)
		deps.selections.EXPECT().Clear(ctx, "presence", "u1").Return(nil)
		deps.selections.EXPECT().Clear(ctx, "main-salary", "u1").Return(nil)

		assert.NoError(t, deps.service.Logout(ctx, "u1"))
	})

	t.Run("keeps clearing after a failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		redisErr := errors.New("redis down")
		deps.views.EXPECT().Reset(ctx, "u1").Return(redisErr)
		deps.selections.EXPECT().Clear(ctx, "presence", "u1").Return(nil)
		deps.selections.EXPECT().Clear(ctx, "main-salary", "u1").Return(nil)

		err := deps.service.Logout(ctx, "u1")
		assert.ErrorIs(t, err, redisErr)
	})
}
