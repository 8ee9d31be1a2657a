package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/idp"
	"github.com/skylight-ar/account-service/internal/account/validate"
)

const (
	msgIncorrectCredentials = "Incorrect credentials. Try again or reset password."
)

// SessionService owns the sign-in flow. Unknown address, wrong password, and
// provider faults all collapse into the same user-facing message; the real
// cause goes to the log only.
type SessionService struct {
	Provider idp.Provider
	Logger   *slog.Logger

	CallTimeout time.Duration

	// Failed sign-in counts per email, kept for logging. Nothing is gated on
	// them.
	mu       sync.Mutex
	attempts map[string]int
}

func NewSessionService(provider idp.Provider, logger *slog.Logger) *SessionService {
	return &SessionService{
		Provider:    provider,
		Logger:      logger,
		CallTimeout: DefaultCallTimeout,
		attempts:    make(map[string]int),
	}
}

// SignIn validates the form fields and authenticates against the provider.
// The email is trimmed before anything looks at it, matching the form input
// handling of the shipped client.
func (s *SessionService) SignIn(ctx context.Context, email, password string) domain.SessionResult {
	email = strings.TrimSpace(email)
	if verr := validate.Login(email, password); verr != nil {
		return domain.SessionResult{
			State:  domain.SessionIdle,
			Dialog: domain.LoginErrorDialog(verr.Message),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	identity, err := s.Provider.SignIn(callCtx, email, password)
	cancel()
	if err != nil {
		attempts := s.recordFailure(email)
		s.Logger.Warn("sign-in failed",
			"email", email,
			"failed_attempts", attempts,
			"error", err,
			"unavailable", errors.Is(err, idp.ErrUnavailable),
		)
		return domain.SessionResult{
			State:  domain.SessionFailed,
			Dialog: domain.LoginErrorDialog(msgIncorrectCredentials),
		}
	}

	s.clearFailures(email)
	s.Logger.Info("sign-in succeeded", "email", email, "user_id", identity.UserID)
	return domain.SessionResult{
		State:   domain.SessionActivated,
		UserID:  identity.UserID,
		IDToken: identity.IDToken,
	}
}

func (s *SessionService) recordFailure(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[email]++
	return s.attempts[email]
}

func (s *SessionService) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, email)
}
