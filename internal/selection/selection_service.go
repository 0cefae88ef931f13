package selection

import (
	"context"

	"hr-dashboard/internal/form"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, screen, userID string) (Selection, error)
	Update(ctx context.Context, screen, userID string, req UpdateSelectionRequest) (Selection, error)
	Clear(ctx context.Context, screen, userID string) error
}

type service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("selection.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("selection.service")
	}
	return &service{store: store, logger: l}
}

func (s *service) Get(ctx context.Context, screen, userID string) (Selection, error) {
	return s.store.Load(ctx, screen, userID)
}

func (s *service) Update(ctx context.Context, screen, userID string, req UpdateSelectionRequest) (Selection, error) {
	if err := form.Validate(req); err != nil {
		return Selection{}, err
	}

	sel, err := s.store.Load(ctx, screen, userID)
	if err != nil {
		return Selection{}, err
	}

	switch req.Action {
	case ActionToggle:
		sel.Toggle(*req.Item, req.PageSize)
	case ActionToggleAll:
		sel.ToggleAll(req.Page)
	}

	if err := s.store.Save(ctx, userID, sel); err != nil {
		return Selection{}, err
	}
	s.logger.Debug("selection updated",
		zap.String("screen", screen),
		zap.String("user_id", userID),
		zap.Int("count", len(sel.Items)),
		zap.Bool("all", sel.All),
	)
	return sel, nil
}

func (s *service) Clear(ctx context.Context, screen, userID string) error {
	return s.store.Clear(ctx, screen, userID)
}
