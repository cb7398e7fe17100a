package memory

import (
	"context"
	"fmt"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if account.Id == uuid.Nil {
		account.Id = uuid.New()
	}
	for _, existing := range r.store.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("duplicate email %q", account.Email)
		}
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	r.store.accounts[account.Id] = *account
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.Id]; !ok {
		return fmt.Errorf("account %s not found", account.Id)
	}
	account.UpdatedAt = time.Now()
	r.store.accounts[account.Id] = *account
	return nil
}

func (r *AccountRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *AccountRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := splitSpecs(specs)
	var out []*entity.Account
	for _, a := range r.store.accounts {
		ok, err := matchAccount(a, q.filters)
		if err != nil {
			return nil, err
		}
		if ok {
			cp := a
			out = append(out, &cp)
		}
	}

	field, desc := "created_at", false
	if q.order != nil {
		field, desc = q.order.Field, q.order.Desc
	}
	sortStable(out, func(a, b *entity.Account) bool {
		switch field {
		case "email":
			return a.Email < b.Email
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}, desc)

	return paginate(out, q.page), nil
}

func (r *AccountRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.accounts[id]
	if !ok {
		return nil
	}
	a.LastLogin = &at
	r.store.accounts[id] = a
	return nil
}

func matchAccount(a entity.Account, filters []specification.Specification) (bool, error) {
	for _, spec := range filters {
		switch s := spec.(type) {
		case specification.ByEmail:
			if a.Email != s.Email {
				return false, nil
			}
		case specification.ByID:
			if a.Id != s.ID {
				return false, nil
			}
		case specification.ByIDs:
			if !containsID(s.IDs, a.Id) {
				return false, nil
			}
		case specification.ActiveAccounts:
			if !a.IsActive {
				return false, nil
			}
		default:
			return false, unsupported(spec)
		}
	}
	return true, nil
}
