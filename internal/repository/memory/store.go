// Package memory holds process-local implementations of the repository
// contracts. It backs the server when no database is configured and keeps
// service tests free of Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/repository/contract"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is the shared table space for all memory repositories.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]entity.Account
	products map[uuid.UUID]entity.Product
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]entity.Account),
		products: make(map[uuid.UUID]entity.Product),
	}
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork applies writes immediately; Rollback cannot undo them.
type unitOfWork struct {
	store  *Store
	active bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *unitOfWork) AccountRepository() contract.AccountRepository {
	return &AccountRepository{store: u.store}
}

func (u *unitOfWork) ProductRepository() contract.ProductRepository {
	return &ProductRepository{store: u.store}
}

// query splits specs into filters, one ordering and one page.
type query struct {
	filters []specification.Specification
	order   *specification.OrderBy
	page    *specification.Pagination
}

func splitSpecs(specs []specification.Specification) query {
	var q query
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			o := s
			q.order = &o
		case specification.Pagination:
			p := s
			q.page = &p
		default:
			q.filters = append(q.filters, spec)
		}
	}
	return q
}

func paginate[T any](items []T, page *specification.Pagination) []T {
	if page == nil {
		return items
	}
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func unsupported(spec specification.Specification) error {
	return fmt.Errorf("memory repository: unsupported specification %T", spec)
}

func sortStable[T any](items []T, less func(a, b T) bool, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
