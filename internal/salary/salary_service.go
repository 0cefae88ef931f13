package salary

import (
	"context"
	"encoding/json"
	"strconv"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/export"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence/category"
	"hr-dashboard/internal/querycache"
	salaryerrors "hr-dashboard/internal/salary/errors"
	"hr-dashboard/internal/selection"
	"hr-dashboard/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	Resource = "salary"
	// Screen adalah key selection untuk tabel gaji pokok.
	Screen = "main-salary"
	Entity = "main-salary"

	exportSheet = "Gaji Pokok"

	msgCreated = "Berhasil menambah gaji pokok"
	msgUpdated = "Berhasil mengedit gaji pokok"
	msgDeleted = "Berhasil menghapus gaji pokok"
)

var exportHeaders = []string{"No", "Nama", "Gaji Pokok"}

type Service interface {
	List(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[MainSalaryResponse], error)
	GetByID(ctx context.Context, id int64) (MainSalaryResponse, error)
	Create(ctx context.Context, req MainSalaryRequest) (form.Notification, error)
	Update(ctx context.Context, id int64, req MainSalaryRequest) (form.Notification, error)
	Delete(ctx context.Context, id int64) (form.Notification, error)
	Export(ctx context.Context, userID string) ([]byte, error)
}

type service struct {
	repo      Repository
	cache     *querycache.Cache
	selection selection.Service
	runner    *mutation.Runner
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	cache *querycache.Cache,
	sel selection.Service,
	runner *mutation.Runner,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{repo: repo, cache: cache, selection: sel, runner: runner, logger: l}
}

func (s *service) List(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[MainSalaryResponse], error) {
	if q.Page < 1 {
		q.Page = category.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(q.Limit) {
		return backend.Page[MainSalaryResponse]{}, salaryerrors.ErrInvalidLimit
	}

	key := querycache.Key{Scope: userID, Entity: Entity, Page: q.Page, Limit: q.Limit, Search: q.Search}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[MainSalaryResponse], error) {
		page, err := s.repo.List(ctx, q)
		if err != nil {
			return backend.Page[MainSalaryResponse]{}, err
		}
		return mapToPageResponse(page), nil
	})
}

func (s *service) GetByID(ctx context.Context, id int64) (MainSalaryResponse, error) {
	if id <= 0 {
		return MainSalaryResponse{}, salaryerrors.ErrInvalidID
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MainSalaryResponse{}, err
	}
	return mapToResponse(m), nil
}

func (s *service) Create(ctx context.Context, req MainSalaryRequest) (form.Notification, error) {
	op := mutation.Op{
		Resource: Resource,
		Entities: []string{Entity},
		Action:   mutation.ActionCreate,
		Success:  msgCreated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.Create(ctx, req.body())
	})
}

func (s *service) Update(ctx context.Context, id int64, req MainSalaryRequest) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, salaryerrors.ErrInvalidID
	}
	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{Entity},
		Action:     mutation.ActionUpdate,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgUpdated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.repo.Update(ctx, id, req.body())
	})
}

func (s *service) Delete(ctx context.Context, id int64) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, salaryerrors.ErrInvalidID
	}
	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{Entity},
		Action:     mutation.ActionDelete,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgDeleted,
	}
	return s.runner.Submit(ctx, op, nil, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// Export menulis baris yang dicentang di tabel gaji pokok ke xlsx. Row
// selection berbentuk MainSalaryResponse, sama dengan yang dikirim List.
func (s *service) Export(ctx context.Context, userID string) ([]byte, error) {
	sel, err := s.selection.Get(ctx, Screen, userID)
	if err != nil {
		return nil, err
	}
	if sel.Empty() {
		return nil, salaryerrors.ErrNothingSelected
	}

	rows := make([][]any, 0, len(sel.Items))
	for i, item := range sel.Items {
		var m MainSalaryResponse
		if len(item.Row) > 0 {
			if err := json.Unmarshal(item.Row, &m); err != nil {
				contextutil.GetLogger(ctx, s.logger).Warn("export main salary failed",
					zap.Int64("id", item.ID),
					zap.Error(err),
				)
				return nil, err
			}
		}
		amount, _ := decimal.NewFromString(m.MainSalary)
		value, _ := amount.Float64()
		rows = append(rows, []any{i + 1, m.EmployeeName, value})
	}
	return export.WriteRows(exportSheet, exportHeaders, rows)
}
