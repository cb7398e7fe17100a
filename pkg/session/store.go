package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"coreclad-be/internal/pkg/logger"
)

// Store is the single source of truth for one client's login state.
//
// Mutations are serialized by mu. Login, Logout and Restore each observe a
// generation number; a verifier result that comes back after a newer Login or
// Logout has started is dropped with ErrSuperseded instead of overwriting it.
// The persisted record and the in-memory identity are only changed together
// while mu is held.
type Store struct {
	mu        sync.Mutex
	key       string
	verifier  Verifier
	persister Persister
	logger    logger.ILogger
	now       func() time.Time

	identity       *Identity
	loading        bool
	restoreStarted bool
	restoreDone    chan struct{}
	generation     uint64
}

func NewStore(clientID string, verifier Verifier, persister Persister, log logger.ILogger) *Store {
	return &Store{
		key:         StorageKey(clientID),
		verifier:    verifier,
		persister:   persister,
		logger:      log,
		now:         time.Now,
		loading:     true,
		restoreDone: make(chan struct{}),
	}
}

// Restore reads the persisted record once. Later calls wait for the first one
// to finish (or for ctx) and return the current session.
func (s *Store) Restore(ctx context.Context) Session {
	s.mu.Lock()
	if s.restoreStarted {
		done := s.restoreDone
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return s.Snapshot()
	}
	s.restoreStarted = true
	gen := s.generation
	s.mu.Unlock()

	id, err := s.readPersisted(ctx)
	if err == nil {
		if rv, ok := s.verifier.(Revalidator); ok {
			id, err = rv.Revalidate(ctx, id.Id)
			if err == nil && !id.Complete() {
				err = fmt.Errorf("%w: incomplete identity", ErrRevoked)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.restoreDone)
	s.loading = false

	if s.generation != gen {
		return s.snapshotLocked()
	}

	switch {
	case err == nil:
		s.identity = &id
		s.logger.Info("SESSION", "Session restored", map[string]interface{}{"email": id.Email})
	case errors.Is(err, ErrNotFound):
	case errors.Is(err, ErrMalformedRecord), errors.Is(err, ErrRevoked):
		s.logger.Warn("SESSION", "Discarding persisted session", map[string]interface{}{"error": err.Error()})
		if delErr := s.persister.Delete(context.WithoutCancel(ctx), s.key); delErr != nil {
			s.logger.Error("SESSION", "Failed to remove stale session record", map[string]interface{}{"error": delErr.Error()})
		}
	default:
		s.logger.Warn("SESSION", "Session restore failed", map[string]interface{}{"error": err.Error()})
	}

	return s.snapshotLocked()
}

func (s *Store) readPersisted(ctx context.Context) (Identity, error) {
	data, err := s.persister.Load(ctx, s.key)
	if err != nil {
		return Identity{}, err
	}
	return decodeRecord(data)
}

// Login verifies the credentials and, on success, persists and stores the
// identity. A failed verification clears any persisted record, even one that
// Restore has not read yet, and leaves the client unauthenticated. An
// abandoned call (ctx done) changes nothing.
func (s *Store) Login(ctx context.Context, email, password string) (Identity, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	id, verifyErr := s.verifier.Verify(ctx, email, password)
	if verifyErr == nil && !id.Complete() {
		verifyErr = errors.New("session: verifier returned an incomplete identity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return Identity{}, ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	if verifyErr != nil {
		if err := s.persister.Delete(ctx, s.key); err != nil {
			return Identity{}, errors.Join(verifyErr, err)
		}
		// A Restore that read the old record must not apply it now.
		s.generation++
		s.identity = nil
		return Identity{}, verifyErr
	}

	data, err := encodeRecord(id, s.now())
	if err != nil {
		return Identity{}, err
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		return Identity{}, fmt.Errorf("persist session: %w", err)
	}

	s.generation++
	s.identity = &id
	return id, nil
}

// Logout clears the identity and the persisted record. Calling it while
// unauthenticated is a no-op that still invalidates any login in flight.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++

	if s.identity == nil {
		// Restore may not have run yet; make sure nothing can come back later.
		if err := s.persister.Delete(ctx, s.key); err != nil {
			s.logger.Warn("SESSION", "Failed to clear session record on idle logout", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	if err := s.persister.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.identity = nil
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity != nil {
		return Authenticated
	}
	return Unauthenticated
}

func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Session {
	snap := Session{State: Unauthenticated, Loading: s.loading}
	if s.identity != nil {
		id := *s.identity
		snap.State = Authenticated
		snap.Identity = &id
	}
	return snap
}
