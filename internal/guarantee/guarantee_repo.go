package guarantee

import (
	"context"
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
)

const masterPath = "/guarantee"

//go:generate mockgen -source=guarantee_repo.go -destination=mock/guarantee_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, kind Kind, q backend.ListQuery) (backend.Page[Record], error)
	FindByID(ctx context.Context, kind Kind, id int64) (Record, error)
	Create(ctx context.Context, kind Kind, body backend.Body) error
	Update(ctx context.Context, kind Kind, id int64, body backend.Body) error
	Delete(ctx context.Context, kind Kind, id int64) error
	FindGuarantees(ctx context.Context) ([]Guarantee, error)
}

type repository struct {
	backend backend.Doer
}

func NewRepository(doer backend.Doer) Repository {
	return &repository{backend: doer}
}

func itemPath(kind Kind, id int64) string {
	return kind.Path() + "/" + strconv.FormatInt(id, 10)
}

func (r *repository) List(ctx context.Context, kind Kind, q backend.ListQuery) (backend.Page[Record], error) {
	return backend.List[Record](ctx, r.backend, kind.Path(), q)
}

func (r *repository) FindByID(ctx context.Context, kind Kind, id int64) (Record, error) {
	return backend.Get[Record](ctx, r.backend, itemPath(kind, id))
}

func (r *repository) Create(ctx context.Context, kind Kind, body backend.Body) error {
	return r.backend.Do(ctx, http.MethodPost, kind.Path(), nil, body, nil)
}

func (r *repository) Update(ctx context.Context, kind Kind, id int64, body backend.Body) error {
	return r.backend.Do(ctx, http.MethodPatch, itemPath(kind, id), nil, body, nil)
}

func (r *repository) Delete(ctx context.Context, kind Kind, id int64) error {
	return r.backend.Do(ctx, http.MethodDelete, itemPath(kind, id), nil, nil, nil)
}

// FindGuarantees membaca master jaminan; backend mengirim array tanpa pagination.
func (r *repository) FindGuarantees(ctx context.Context) ([]Guarantee, error) {
	out, err := backend.Get[[]Guarantee](ctx, r.backend, masterPath)
	if out == nil {
		out = []Guarantee{}
	}
	return out, err
}
