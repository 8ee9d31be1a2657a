// Package store defines the persistence interfaces for the account service.
// Concrete drivers live under drivers/ and are selected at startup; the rest
// of the service only ever sees these interfaces and the three sentinel
// errors below.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/skylight-ar/account-service/internal/account/domain"
)

var (
	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("store: not found")

	// ErrUnavailable marks a backend that could not be reached or answered
	// with a transient fault. Callers may retry.
	ErrUnavailable = errors.New("store: unavailable")

	// ErrDenied marks a request the backend rejected for authorization
	// reasons. Retrying will not help.
	ErrDenied = errors.New("store: permission denied")
)

// Store bundles the collections a driver must provide.
type Store interface {
	Accounts() Accounts
	OTPCodes() OTPCodes

	// Ping reports backend reachability, used by the readiness probe.
	Ping(ctx context.Context) error

	Close() error
}

// Accounts is the users collection, keyed by provider-issued user id.
type Accounts interface {
	// Put writes the account record, replacing any existing record with the
	// same user id.
	Put(ctx context.Context, account domain.Account) error

	// Get returns the account for the given user id, or ErrNotFound.
	Get(ctx context.Context, userID string) (domain.Account, error)

	// GetByEmail returns the first account matching email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// OTPCodes is the otp_codes collection, keyed by email. At most one challenge
// exists per email; Put overwrites.
type OTPCodes interface {
	// Put writes the challenge, replacing any pending challenge for the same
	// email and resetting its attempt counter.
	Put(ctx context.Context, challenge domain.OTPChallenge) error

	// Get returns the pending challenge for email, or ErrNotFound.
	Get(ctx context.Context, email string) (domain.OTPChallenge, error)

	// IncrementAttempts bumps the failed-attempt counter and returns the new
	// value. Returns ErrNotFound if no challenge is pending.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// Delete removes the pending challenge. Deleting a missing challenge is
	// not an error.
	Delete(ctx context.Context, email string) error

	// DeleteExpired removes every challenge whose expiry is at or before now
	// and returns how many were removed. Drivers with native expiry may
	// return (0, nil) unconditionally.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
