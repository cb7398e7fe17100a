package contract

import (
	"context"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	Update(ctx context.Context, account *entity.Account) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Account, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
