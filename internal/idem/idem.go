package idem

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a best-effort duplicate detector. The durable idempotency
// guarantee lives in the payments unique index; this only short-circuits
// obvious client retries before they reach Postgres.
type Store interface {
	PutNX(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Del releases a key claimed by PutNX, so a failed operation does
	// not absorb the caller's retry.
	Del(ctx context.Context, key string) error
}

type redisStore struct{ r *redis.Client }

func New(rdb *redis.Client) Store {
	return &redisStore{r: rdb}
}

func (s *redisStore) PutNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.r.SetNX(ctx, "idem:"+key, "1", ttl).Result()
}

func (s *redisStore) Del(ctx context.Context, key string) error {
	return s.r.Del(ctx, "idem:"+key).Err()
}
