package employee

import (
	"context"
	"encoding/json"
	"time"

	"hr-dashboard/internal/backend"
	employeeerrors "hr-dashboard/internal/employee/errors"
	"hr-dashboard/internal/presence/category"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Entity sama dengan slice rekap di layar Kehadiran.
	Entity = "active-employee"

	OptionsKey = "employees:options"
	optionsTTL = time.Hour
)

type Service interface {
	GetActive(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[EmployeeResponse], error)
	GetOptions(ctx context.Context) ([]OptionResponse, error)
}

type service struct {
	repo   Repository
	cache  *querycache.Cache
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, cache *querycache.Cache, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		cache:  cache,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetActive(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[EmployeeResponse], error) {
	if q.Page < 1 {
		q.Page = category.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(q.Limit) {
		return backend.Page[EmployeeResponse]{}, employeeerrors.ErrInvalidLimit
	}

	// scope dipisah dari slice rekap karena bentuk value yang disimpan berbeda
	key := querycache.Key{
		Scope:  userID + "/employees",
		Entity: Entity,
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
	}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[EmployeeResponse], error) {
		page, err := s.repo.FindActive(ctx, q)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("get active employees failed",
				zap.Int("page", q.Page),
				zap.Int("limit", q.Limit),
				zap.Error(err),
			)
			return backend.Page[EmployeeResponse]{}, err
		}
		return mapToPageResponse(page), nil
	})
}

func (s *service) GetOptions(ctx context.Context) ([]OptionResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight: semua form yang dibuka bersamaan berbagi satu fetch
	v, err, _ := s.sf.Do(OptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToOptions(emps)

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, OptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get employee options failed", zap.Error(err))
		return nil, employeeerrors.ErrOptionsUnavailable
	}
	return v.([]OptionResponse), nil
}
