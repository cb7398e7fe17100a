package entity

import (
	"time"

	"github.com/google/uuid"
)

type AccountRole string

const (
	AccountRoleAdmin  AccountRole = "admin"
	AccountRoleEditor AccountRole = "editor"
)

// Account is the stored admin login record. It never leaves the server.
type Account struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Role         AccountRole
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
