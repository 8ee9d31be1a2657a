package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/store"
)

const (
	// DefaultTTL is how long a challenge stays verifiable after issue.
	DefaultTTL = 10 * time.Minute

	// DefaultMaxAttempts is how many wrong codes are tolerated before the
	// challenge is invalidated.
	DefaultMaxAttempts = 5
)

// Verdict is the outcome of checking a candidate code.
type Verdict int

const (
	// VerdictMatch: the code matched; the challenge has been consumed.
	VerdictMatch Verdict = iota

	// VerdictMismatch: a challenge is pending but the code was wrong.
	VerdictMismatch

	// VerdictNotFound: no pending challenge for the email. Covers never
	// issued, expired, exhausted, and already consumed.
	VerdictNotFound
)

func (v Verdict) String() string {
	switch v {
	case VerdictMatch:
		return "match"
	case VerdictMismatch:
		return "mismatch"
	case VerdictNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Store issues and checks challenges on top of the otp_codes collection. The
// zero value is not usable; construct with NewStore.
type Store struct {
	codes       store.OTPCodes
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewStore(codes store.OTPCodes) *Store {
	return &Store{
		codes:       codes,
		ttl:         DefaultTTL,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
}

// WithTTL overrides the challenge time-to-live.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	s.ttl = ttl
	return s
}

// WithMaxAttempts overrides the wrong-code tolerance.
func (s *Store) WithMaxAttempts(n int) *Store {
	s.maxAttempts = n
	return s
}

// Put records code as the pending challenge for email, replacing any previous
// challenge and resetting the attempt counter. A put failure means no
// verifiable challenge exists, so the caller must not send the code.
func (s *Store) Put(ctx context.Context, email, code string) error {
	now := s.now()
	err := s.codes.Put(ctx, domain.OTPChallenge{
		Email:     email,
		Code:      code,
		Attempts:  0,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return fmt.Errorf("put otp challenge: %w", err)
	}
	return nil
}

// Verify checks candidate against the pending challenge for email. A match
// consumes the challenge; a mismatch burns one attempt and invalidates the
// challenge once the cap is reached. Expired challenges are reported as not
// found and removed on sight. The returned error is only non-nil for backend
// faults, never for a wrong or missing code.
func (s *Store) Verify(ctx context.Context, email, candidate string) (Verdict, error) {
	challenge, err := s.codes.Get(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return VerdictNotFound, nil
	}
	if err != nil {
		return VerdictNotFound, fmt.Errorf("fetch otp challenge: %w", err)
	}

	if challenge.Expired(s.now()) {
		_ = s.codes.Delete(ctx, email)
		return VerdictNotFound, nil
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(candidate)) == 1 {
		if err := s.codes.Delete(ctx, email); err != nil {
			return VerdictMatch, fmt.Errorf("consume otp challenge: %w", err)
		}
		return VerdictMatch, nil
	}

	attempts, err := s.codes.IncrementAttempts(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return VerdictNotFound, nil
	}
	if err != nil {
		return VerdictMismatch, fmt.Errorf("record otp attempt: %w", err)
	}
	if attempts >= s.maxAttempts {
		_ = s.codes.Delete(ctx, email)
	}
	return VerdictMismatch, nil
}
