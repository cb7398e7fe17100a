// Package session holds the per-client authentication state: who, if anyone,
// is logged in on a given browser client, and the durable record that lets a
// fresh server process pick that state back up.
package session

import (
	"context"
	"errors"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Identity is a verified principal. A zero Identity is never stored.
type Identity struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) Complete() bool {
	return i.Id != "" && i.Email != "" && i.Role != ""
}

// Session is a point-in-time view of a Store.
type Session struct {
	State    State
	Identity *Identity
	Loading  bool
}

func (s Session) IsAuthenticated() bool {
	return s.State == Authenticated
}

// Verifier checks an email/password pair and returns the matching Identity.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (Identity, error)
}

// Revalidator is optionally implemented by a Verifier to re-check a restored
// identity against the account source.
type Revalidator interface {
	Revalidate(ctx context.Context, id string) (Identity, error)
}

var (
	ErrSuperseded         = errors.New("session: superseded by a newer login or logout")
	ErrStorageUnavailable = errors.New("session: storage unavailable")
	ErrNotFound           = errors.New("session: no persisted record")
	ErrMalformedRecord    = errors.New("session: malformed record")
)

// ErrRevoked is returned by a Revalidator when the account behind a restored
// identity no longer exists or may no longer sign in.
var ErrRevoked = errors.New("session: identity revoked")
