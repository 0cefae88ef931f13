package employee

import (
	"context"

	"hr-dashboard/internal/backend"
)

const (
	activePath   = "/employee/active"
	optionsLimit = 999999
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindActive(ctx context.Context, q backend.ListQuery) (backend.Page[Employee], error)
	FindOptions(ctx context.Context) ([]Employee, error)
}

type repository struct {
	backend backend.Doer
}

func NewRepository(doer backend.Doer) Repository {
	return &repository{backend: doer}
}

func (r *repository) FindActive(ctx context.Context, q backend.ListQuery) (backend.Page[Employee], error) {
	return backend.List[Employee](ctx, r.backend, activePath, q)
}

// FindOptions mengambil seluruh karyawan aktif dalam satu halaman.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	page, err := backend.List[Employee](ctx, r.backend, activePath, backend.ListQuery{Page: 1, Limit: optionsLimit})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
