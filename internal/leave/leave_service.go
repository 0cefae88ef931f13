package leave

import (
	"context"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	leaveerrors "hr-dashboard/internal/leave/errors"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence/category"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	Resource = "leave"
	// MasterEntity adalah cache daftar jenis cuti.
	MasterEntity = "leave-type-master"
	// BalanceEntity sama dengan kategori Cuti (C) di layar Kehadiran.
	BalanceEntity = "leave"

	msgBalanceCreated = "Berhasil menambah saldo cuti"
)

type Service interface {
	ListMaster(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[LeaveTypeMasterResponse], error)
	GetMaster(ctx context.Context, id int64) (LeaveTypeMasterResponse, error)
	CreateBalance(ctx context.Context, req CreateBalanceRequest) (form.Notification, error)
}

type service struct {
	repo   Repository
	cache  *querycache.Cache
	runner *mutation.Runner
	logger *zap.Logger
}

func NewService(repo Repository, cache *querycache.Cache, runner *mutation.Runner, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, cache: cache, runner: runner, logger: l}
}

func (s *service) ListMaster(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[LeaveTypeMasterResponse], error) {
	if q.Page < 1 {
		q.Page = category.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(q.Limit) {
		return backend.Page[LeaveTypeMasterResponse]{}, leaveerrors.ErrInvalidLimit
	}

	key := querycache.Key{Scope: userID, Entity: MasterEntity, Page: q.Page, Limit: q.Limit, Search: q.Search}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[LeaveTypeMasterResponse], error) {
		page, err := s.repo.ListMaster(ctx, q)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("list leave type master failed", zap.Error(err))
			return backend.Page[LeaveTypeMasterResponse]{}, err
		}
		out := backend.Page[LeaveTypeMasterResponse]{
			Data:        make([]LeaveTypeMasterResponse, 0, len(page.Data)),
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
		}
		for _, m := range page.Data {
			out.Data = append(out.Data, mapToResponse(m))
		}
		return out, nil
	})
}

// GetMaster dipakai form saldo cuti untuk menampilkan maximum_leave_type.
func (s *service) GetMaster(ctx context.Context, id int64) (LeaveTypeMasterResponse, error) {
	if id <= 0 {
		return LeaveTypeMasterResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	m, err := s.repo.FindMaster(ctx, id)
	if err != nil {
		return LeaveTypeMasterResponse{}, err
	}
	return mapToResponse(m), nil
}

func (s *service) CreateBalance(ctx context.Context, req CreateBalanceRequest) (form.Notification, error) {
	contextutil.GetLogger(ctx, s.logger).Debug("create leave balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	op := mutation.Op{
		Resource: Resource,
		Entities: []string{BalanceEntity},
		Action:   mutation.ActionCreate,
		Success:  msgBalanceCreated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.CreateBalance(ctx, req.values())
	})
}
