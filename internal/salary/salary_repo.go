package salary

import (
	"context"
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
)

const mainSalaryPath = "/main-salary"

type Repository interface {
	List(ctx context.Context, q backend.ListQuery) (backend.Page[MainSalary], error)
	FindByID(ctx context.Context, id int64) (MainSalary, error)
	Create(ctx context.Context, body backend.Body) error
	Update(ctx context.Context, id int64, body backend.Body) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	backend backend.Doer
}

func NewRepository(doer backend.Doer) Repository {
	return &repository{backend: doer}
}

func itemPath(id int64) string {
	return mainSalaryPath + "/" + strconv.FormatInt(id, 10)
}

func (r *repository) List(ctx context.Context, q backend.ListQuery) (backend.Page[MainSalary], error) {
	return backend.List[MainSalary](ctx, r.backend, mainSalaryPath, q)
}

func (r *repository) FindByID(ctx context.Context, id int64) (MainSalary, error) {
	return backend.Get[MainSalary](ctx, r.backend, itemPath(id))
}

func (r *repository) Create(ctx context.Context, body backend.Body) error {
	return r.backend.Do(ctx, http.MethodPost, mainSalaryPath, nil, body, nil)
}

func (r *repository) Update(ctx context.Context, id int64, body backend.Body) error {
	return r.backend.Do(ctx, http.MethodPatch, itemPath(id), nil, body, nil)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.backend.Do(ctx, http.MethodDelete, itemPath(id), nil, nil, nil)
}
