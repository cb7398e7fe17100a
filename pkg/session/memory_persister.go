package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryPersister keeps records in process memory. Records do not survive a restart.
type MemoryPersister struct {
	cache *cache.Cache
}

func NewMemoryPersister(ttl time.Duration) *MemoryPersister {
	expiry := ttl
	if expiry <= 0 {
		expiry = cache.NoExpiration
	}
	return &MemoryPersister{
		cache: cache.New(expiry, 10*time.Minute),
	}
}

func (p *MemoryPersister) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if x, found := p.cache.Get(key); found {
		data := x.([]byte)
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	return nil, ErrNotFound
}

func (p *MemoryPersister) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	p.cache.Set(key, stored, cache.DefaultExpiration)
	return nil
}

func (p *MemoryPersister) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.cache.Delete(key)
	return nil
}
