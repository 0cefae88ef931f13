package auth

import (
	"context"
	"errors"

	"hr-dashboard/internal/domain"

	"go.uber.org/zap"
)

// PermissionSource dipenuhi rbac.Service.
type PermissionSource interface {
	Permissions(role string) ([]domain.PermissionResponse, error)
}

// ViewResetter dipenuhi viewstate.Store.
type ViewResetter interface {
	Reset(ctx context.Context, userID string) error
}

// SelectionClearer dipenuhi selection.Store.
type SelectionClearer interface {
	Clear(ctx context.Context, screen, userID string) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Me(ctx context.Context, userID, role string) (MeResponse, error)
	Logout(ctx context.Context, userID string) error
}

type service struct {
	permissions PermissionSource
	views       ViewResetter
	selections  SelectionClearer
	screens     []string
	logger      *zap.Logger
}

// NewService: screens adalah layar yang punya selection (contoh "presence",
// "main-salary"), semuanya dikosongkan saat logout.
func NewService(
	permissions PermissionSource,
	views ViewResetter,
	selections SelectionClearer,
	screens []string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		permissions: permissions,
		views:       views,
		selections:  selections,
		screens:     screens,
		logger:      l,
	}
}

func (s *service) Me(ctx context.Context, userID, role string) (MeResponse, error) {
	if role == "" {
		role = domain.DefaultRole
	}
	perms, err := s.permissions.Permissions(role)
	if err != nil {
		s.logger.Error("load permissions failed", zap.String("role", role), zap.Error(err))
		return MeResponse{}, err
	}
	return MeResponse{UserID: userID, Role: role, Permissions: perms}, nil
}

// Logout membuang state tampilan dan selection milik user. Semua store tetap
// dicoba walaupun salah satunya gagal.
func (s *service) Logout(ctx context.Context, userID string) error {
	var errs []error
	if err := s.views.Reset(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	for _, screen := range s.screens {
		if err := s.selections.Clear(ctx, screen, userID); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("logout cleanup incomplete", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
