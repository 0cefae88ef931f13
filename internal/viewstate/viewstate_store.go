package viewstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hr-dashboard/internal/presence/category"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	KeyPrefix  = "dashboard:view:"
	DefaultTTL = 24 * time.Hour
)

func Key(userID string) string {
	return KeyPrefix + userID
}

// Store menyimpan state layar Kehadiran per user.
type Store interface {
	Load(ctx context.Context, userID string) (*category.State, error)
	Save(ctx context.Context, userID string, state *category.State) error
	Reset(ctx context.Context, userID string) error
}

type redisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	l := zap.L().Named("viewstate.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("viewstate.store")
	}
	return &redisStore{rdb: rdb, ttl: ttl, logger: l}
}

// Load mengembalikan state default bila belum ada atau isinya rusak.
func (s *redisStore) Load(ctx context.Context, userID string) (*category.State, error) {
	raw, err := s.rdb.Get(ctx, Key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return category.NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	var state category.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warn("discarding corrupt view state", zap.String("user_id", userID), zap.Error(err))
		return category.NewState(), nil
	}
	state.Normalize()
	return &state, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, state *category.State) error {
	state.Normalize()
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(userID), string(raw), s.ttl).Err()
}

func (s *redisStore) Reset(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, Key(userID)).Err()
}
