// Package credential verifies admin email/password pairs against the account table.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/pkg/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUnavailable        = errors.New("account store unavailable")
)

// AccountStore is the slice of the account repository the verifier needs.
type AccountStore interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type Verifier struct {
	accounts AccountStore
	logger   logger.ILogger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewVerifier(accounts AccountStore, log logger.ILogger) *Verifier {
	return &Verifier{
		accounts: accounts,
		logger:   log,
		now:      time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *Verifier) Verify(ctx context.Context, email, password string) (session.Identity, error) {
	email = NormalizeEmail(email)

	acc, err := v.accounts.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return session.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if acc == nil {
		// Spend the same bcrypt work as a real account so response time does not reveal existence
		v.compareDummy(password)
		return session.Identity{}, ErrInvalidCredentials
	}

	match := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) == nil

	if !acc.IsActive {
		v.logger.Warn("AUTH", "Login attempt on deactivated account", map[string]interface{}{"account_id": acc.Id.String()})
		return session.Identity{}, ErrAccountDeactivated
	}
	if !match {
		return session.Identity{}, ErrInvalidCredentials
	}

	if err := v.accounts.TouchLastLogin(ctx, acc.Id, v.now()); err != nil {
		v.logger.Error("AUTH", "Failed to record last login", map[string]interface{}{
			"account_id": acc.Id.String(),
			"error":      err.Error(),
		})
	}

	return identityOf(acc), nil
}

// Revalidate reloads the account behind a restored session.
func (v *Verifier) Revalidate(ctx context.Context, id string) (session.Identity, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return session.Identity{}, fmt.Errorf("%w: bad account id", session.ErrRevoked)
	}

	acc, err := v.accounts.FindOne(ctx, specification.ByID{ID: accountID})
	if err != nil {
		return session.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if acc == nil {
		return session.Identity{}, fmt.Errorf("%w: account not found", session.ErrRevoked)
	}
	if !acc.IsActive {
		return session.Identity{}, fmt.Errorf("%w: %w", ErrAccountDeactivated, session.ErrRevoked)
	}

	return identityOf(acc), nil
}

func (v *Verifier) compareDummy(password string) {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
}

func identityOf(acc *entity.Account) session.Identity {
	role := string(acc.Role)
	if role == "" {
		role = string(entity.AccountRoleAdmin)
	}
	return session.Identity{
		Id:    acc.Id.String(),
		Email: acc.Email,
		Role:  role,
	}
}
