package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisPersister struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPersister stores records with the given expiry. A ttl of 0 keeps them until logout.
func NewRedisPersister(rdb *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{rdb: rdb, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return data, nil
}

func (p *RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
