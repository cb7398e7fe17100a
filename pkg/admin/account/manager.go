package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/internal/repository/unitofwork"
	"coreclad-be/pkg/admin/credential"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken   = errors.New("email already exists")
	ErrNotFound     = errors.New("account not found")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// Manager handles admin account maintenance
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Create adds an active account with a bcrypt-hashed password.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, email, password string, role entity.AccountRole) (*entity.Account, error) {
	email = credential.NormalizeEmail(email)
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = entity.AccountRoleAdmin
	}

	now := time.Now()
	acc := &entity.Account{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.AccountRepository().Create(ctx, acc); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created admin account", map[string]interface{}{
		"account_id": acc.Id.String(),
		"email":      acc.Email,
		"role":       string(acc.Role),
	})
	return acc, nil
}

// SetActive enables or disables sign-in for an account.
func (m *Manager) SetActive(ctx context.Context, uow unitofwork.UnitOfWork, email string, active bool) (*entity.Account, error) {
	acc, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: credential.NormalizeEmail(email)})
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}

	acc.IsActive = active
	acc.UpdatedAt = time.Now()
	if err := uow.AccountRepository().Update(ctx, acc); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Changed account status", map[string]interface{}{
		"account_id": acc.Id.String(),
		"active":     active,
	})
	return acc, nil
}
