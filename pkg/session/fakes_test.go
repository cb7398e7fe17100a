package session

import (
	"context"
	"errors"
	"sync"
)

var (
	errBadCredentials = errors.New("invalid credentials")
	errDeactivated    = errors.New("account deactivated")
)

type fakeAccount struct {
	password string
	identity Identity
	active   bool
}

type fakeVerifier struct {
	mu       sync.Mutex
	accounts map[string]fakeAccount
	calls    int
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{accounts: map[string]fakeAccount{
		"admin@coreclad.com": {
			password: "correct horse",
			identity: Identity{Id: "acc-1", Email: "admin@coreclad.com", Role: "admin"},
			active:   true,
		},
		"old@coreclad.com": {
			password: "retired",
			identity: Identity{Id: "acc-2", Email: "old@coreclad.com", Role: "admin"},
			active:   false,
		},
	}}
}

func (v *fakeVerifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++

	acc, ok := v.accounts[email]
	if !ok {
		return Identity{}, errBadCredentials
	}
	if !acc.active {
		return Identity{}, errDeactivated
	}
	if acc.password != password {
		return Identity{}, errBadCredentials
	}
	return acc.identity, nil
}

func (v *fakeVerifier) deactivate(email string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	acc := v.accounts[email]
	acc.active = false
	v.accounts[email] = acc
}

// revalidatingVerifier adds the optional Revalidator behaviour.
type revalidatingVerifier struct {
	*fakeVerifier
}

func (v revalidatingVerifier) Revalidate(ctx context.Context, id string) (Identity, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, acc := range v.accounts {
		if acc.identity.Id == id {
			if !acc.active {
				return Identity{}, ErrRevoked
			}
			return acc.identity, nil
		}
	}
	return Identity{}, ErrRevoked
}

// gatedVerifier blocks inside Verify until release is closed.
type gatedVerifier struct {
	inner   Verifier
	entered chan struct{}
	release chan struct{}
}

func newGatedVerifier(inner Verifier) *gatedVerifier {
	return &gatedVerifier{
		inner:   inner,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (v *gatedVerifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	v.entered <- struct{}{}
	<-v.release
	return v.inner.Verify(ctx, email, password)
}

// flakyPersister wraps a MemoryPersister and fails selected operations.
type flakyPersister struct {
	*MemoryPersister
	mu         sync.Mutex
	failLoad   bool
	failSave   bool
	failDelete bool
}

func (p *flakyPersister) set(load, save, del bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failLoad, p.failSave, p.failDelete = load, save, del
}

func (p *flakyPersister) Load(ctx context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	fail := p.failLoad
	p.mu.Unlock()
	if fail {
		return nil, ErrStorageUnavailable
	}
	return p.MemoryPersister.Load(ctx, key)
}

func (p *flakyPersister) Save(ctx context.Context, key string, data []byte) error {
	p.mu.Lock()
	fail := p.failSave
	p.mu.Unlock()
	if fail {
		return ErrStorageUnavailable
	}
	return p.MemoryPersister.Save(ctx, key, data)
}

func (p *flakyPersister) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	fail := p.failDelete
	p.mu.Unlock()
	if fail {
		return ErrStorageUnavailable
	}
	return p.MemoryPersister.Delete(ctx, key)
}
