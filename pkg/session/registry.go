package session

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Client bundles the per-browser state the server keeps: the login Store and
// a caller-defined view value.
type Client[V any] struct {
	ID    string
	Store *Store
	View  V
}

type RegistryConfig[V any] struct {
	IdleTTL        time.Duration
	RestoreTimeout time.Duration
	NewStore       func(clientID string) *Store
	NewView        func(clientID string) V
}

// Registry hands out one Client per client id and drops clients that stay idle
// longer than IdleTTL. Dropping a client does not touch its persisted record.
type Registry[V any] struct {
	mu    sync.Mutex
	cache *cache.Cache
	cfg   RegistryConfig[V]
}

func NewRegistry[V any](cfg RegistryConfig[V]) *Registry[V] {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 12 * time.Hour
	}
	if cfg.RestoreTimeout <= 0 {
		cfg.RestoreTimeout = 5 * time.Second
	}
	return &Registry[V]{
		cache: cache.New(cfg.IdleTTL, 10*time.Minute),
		cfg:   cfg,
	}
}

// Get returns the client for id, creating it on first use. A new client starts
// restoring its session in the background; callers that need the outcome wait
// on Store.Restore.
func (r *Registry[V]) Get(clientID string) *Client[V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(clientID); found {
		c := x.(*Client[V])
		r.cache.Set(clientID, c, cache.DefaultExpiration)
		return c
	}

	c := &Client[V]{
		ID:    clientID,
		Store: r.cfg.NewStore(clientID),
	}
	if r.cfg.NewView != nil {
		c.View = r.cfg.NewView(clientID)
	}
	r.cache.Set(clientID, c, cache.DefaultExpiration)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RestoreTimeout)
		defer cancel()
		c.Store.Restore(ctx)
	}()

	return c
}

// Each calls fn for every live client.
func (r *Registry[V]) Each(fn func(c *Client[V])) {
	for _, item := range r.cache.Items() {
		if c, ok := item.Object.(*Client[V]); ok {
			fn(c)
		}
	}
}

func (r *Registry[V]) Remove(clientID string) {
	r.cache.Delete(clientID)
}

func (r *Registry[V]) Len() int {
	return r.cache.ItemCount()
}
