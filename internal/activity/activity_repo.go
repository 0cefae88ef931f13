package activity

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	List(ctx context.Context, q ListQuery) ([]Activity, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Activity{}).
		Scopes(scopeResource(q.Resource)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Activity
	err := r.db.WithContext(ctx).
		Scopes(scopeResource(q.Resource), paginate(q.Page, q.Limit)).
		Order("occurred_at DESC").
		Find(&out).Error
	return out, total, err
}
