package guarantee

import (
	"context"
	"strconv"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	guaranteeerrors "hr-dashboard/internal/guarantee/errors"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence/category"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	Resource = "guarantee"
	// OptionsEntity adalah cache master jaminan untuk dropdown form.
	OptionsEntity = "make-guarantee"

	msgIncomingCreated = "Berhasil menambah garansi masuk"
	msgIncomingUpdated = "Berhasil mengedit garansi masuk"
	msgIncomingDeleted = "Berhasil menghapus garansi masuk"
	msgOutgoingUpdated = "Berhasil mengedit garansi keluar"
	msgOutgoingDeleted = "Berhasil menghapus garansi keluar"
)

type Service interface {
	List(ctx context.Context, userID string, kind Kind, q backend.ListQuery) (backend.Page[Record], error)
	GetByID(ctx context.Context, kind Kind, id int64) (Record, error)
	Options(ctx context.Context, userID string) ([]OptionResponse, error)

	CreateIncoming(ctx context.Context, req IncomingRequest) (form.Notification, error)
	UpdateIncoming(ctx context.Context, id int64, req IncomingRequest) (form.Notification, error)
	UpdateOutgoing(ctx context.Context, id int64, req OutgoingRequest) (form.Notification, error)
	Delete(ctx context.Context, kind Kind, id int64) (form.Notification, error)
}

type service struct {
	repo   Repository
	cache  *querycache.Cache
	runner *mutation.Runner
	logger *zap.Logger
}

func NewService(repo Repository, cache *querycache.Cache, runner *mutation.Runner, logger ...*zap.Logger) Service {
	l := zap.L().Named("guarantee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("guarantee.service")
	}
	return &service{repo: repo, cache: cache, runner: runner, logger: l}
}

func (s *service) List(ctx context.Context, userID string, kind Kind, q backend.ListQuery) (backend.Page[Record], error) {
	if q.Page < 1 {
		q.Page = category.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(q.Limit) {
		return backend.Page[Record]{}, guaranteeerrors.ErrInvalidLimit
	}

	key := querycache.Key{Scope: userID, Entity: string(kind), Page: q.Page, Limit: q.Limit, Search: q.Search}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[Record], error) {
		return s.repo.List(ctx, kind, q)
	})
}

// GetByID mengisi nilai awal form edit.
func (s *service) GetByID(ctx context.Context, kind Kind, id int64) (Record, error) {
	if id <= 0 {
		return Record{}, guaranteeerrors.ErrInvalidID
	}
	return s.repo.FindByID(ctx, kind, id)
}

func (s *service) Options(ctx context.Context, userID string) ([]OptionResponse, error) {
	key := querycache.Key{Scope: userID, Entity: OptionsEntity}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]OptionResponse, error) {
		gs, err := s.repo.FindGuarantees(ctx)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("get guarantee options failed", zap.Error(err))
			return nil, err
		}
		return mapToOptions(gs), nil
	})
}

func (s *service) CreateIncoming(ctx context.Context, req IncomingRequest) (form.Notification, error) {
	req.File = withUpload("", req.Upload)
	op := mutation.Op{
		Resource: Resource,
		Entities: []string{string(Incoming)},
		Action:   mutation.ActionCreate,
		Success:  msgIncomingCreated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.Create(ctx, Incoming, req.body())
	})
}

func (s *service) UpdateIncoming(ctx context.Context, id int64, req IncomingRequest) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, guaranteeerrors.ErrInvalidID
	}
	req.File = withUpload(req.File, req.Upload)
	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{string(Incoming)},
		Action:     mutation.ActionUpdate,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgIncomingUpdated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.Update(ctx, Incoming, id, req.body())
	})
}

// UpdateOutgoing hanya membuang cache garansi keluar.
func (s *service) UpdateOutgoing(ctx context.Context, id int64, req OutgoingRequest) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, guaranteeerrors.ErrInvalidID
	}
	req.File = withUpload(req.File, req.Upload)
	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{string(Outgoing)},
		Action:     mutation.ActionUpdate,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgOutgoingUpdated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.Update(ctx, Outgoing, id, req.body())
	})
}

func (s *service) Delete(ctx context.Context, kind Kind, id int64) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, guaranteeerrors.ErrInvalidID
	}
	msg := msgIncomingDeleted
	if kind == Outgoing {
		msg = msgOutgoingDeleted
	}
	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{string(kind)},
		Action:     mutation.ActionDelete,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msg,
	}
	return s.runner.Submit(ctx, op, nil, func(ctx context.Context) error {
		return s.repo.Delete(ctx, kind, id)
	})
}
