package leave

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"hr-dashboard/internal/backend"
)

const (
	masterPath  = "/leave-type-master"
	balancePath = "/leave-type"
)

type Repository interface {
	ListMaster(ctx context.Context, q backend.ListQuery) (backend.Page[LeaveTypeMaster], error)
	FindMaster(ctx context.Context, id int64) (LeaveTypeMaster, error)
	CreateBalance(ctx context.Context, values url.Values) error
}

type repository struct {
	backend backend.Doer
}

func NewRepository(doer backend.Doer) Repository {
	return &repository{backend: doer}
}

func (r *repository) ListMaster(ctx context.Context, q backend.ListQuery) (backend.Page[LeaveTypeMaster], error) {
	return backend.List[LeaveTypeMaster](ctx, r.backend, masterPath, q)
}

func (r *repository) FindMaster(ctx context.Context, id int64) (LeaveTypeMaster, error) {
	return backend.Get[LeaveTypeMaster](ctx, r.backend, masterPath+"/"+strconv.FormatInt(id, 10))
}

// CreateBalance mengirim form saldo cuti sebagai application/x-www-form-urlencoded.
func (r *repository) CreateBalance(ctx context.Context, values url.Values) error {
	return r.backend.Do(ctx, http.MethodPost, balancePath, nil, backend.FormBody{Values: values}, nil)
}
