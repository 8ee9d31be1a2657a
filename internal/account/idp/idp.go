// Package idp abstracts the external identity provider that owns credentials
// and email uniqueness. The rest of the service only ever sees Provider and
// the sentinel errors below.
package idp

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmailInUse marks a sign-up for an address the provider already has.
	ErrEmailInUse = errors.New("idp: email already in use")

	// ErrInvalidCredentials marks a sign-in the provider rejected. The
	// provider's distinction between unknown address and wrong password is
	// preserved in the wrapping ProviderError but must never reach the user.
	ErrInvalidCredentials = errors.New("idp: invalid credentials")

	// ErrUnavailable marks a provider that could not be reached or answered
	// with a transient fault.
	ErrUnavailable = errors.New("idp: unavailable")
)

// Identity is the provider's view of a signed-in or newly created user.
type Identity struct {
	UserID  string
	Email   string
	IDToken string
}

// Provider creates accounts and authenticates credentials.
type Provider interface {
	// SignUp creates a new account. Returns ErrEmailInUse if the address is
	// taken.
	SignUp(ctx context.Context, email, password string) (Identity, error)

	// SignIn authenticates credentials. Returns ErrInvalidCredentials for
	// unknown address or wrong password alike.
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// ProviderError carries the provider's own error code alongside the mapped
// sentinel, for logs only.
type ProviderError struct {
	Code    string
	Status  int
	wrapped error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Code, e.Status)
}

func (e *ProviderError) Unwrap() error { return e.wrapped }
