package selection

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyPrefix  = "dashboard:selection:"
	DefaultTTL = 24 * time.Hour
)

func Key(screen, userID string) string {
	return KeyPrefix + screen + ":" + userID
}

type Store interface {
	Load(ctx context.Context, screen, userID string) (Selection, error)
	Save(ctx context.Context, userID string, sel Selection) error
	Clear(ctx context.Context, screen, userID string) error
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, screen, userID string) (Selection, error) {
	empty := Selection{Screen: screen, Items: []Item{}}

	raw, err := s.rdb.Get(ctx, Key(screen, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return empty, nil
	}
	if err != nil {
		return Selection{}, err
	}

	var sel Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return empty, nil
	}
	sel.Screen = screen
	if sel.Items == nil {
		sel.Items = []Item{}
	}
	return sel, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, sel Selection) error {
	if sel.Items == nil {
		sel.Items = []Item{}
	}
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(sel.Screen, userID), string(raw), s.ttl).Err()
}

func (s *redisStore) Clear(ctx context.Context, screen, userID string) error {
	return s.rdb.Del(ctx, Key(screen, userID)).Err()
}
