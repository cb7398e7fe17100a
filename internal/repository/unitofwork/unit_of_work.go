package unitofwork

import (
	"context"

	"coreclad-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() contract.AccountRepository
	ProductRepository() contract.ProductRepository
}
