package idp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skylight-ar/account-service/pkg/cryptox"
)

// LocalProvider is an in-process identity provider for development and tests.
// Credentials are held in memory with argon2id password hashes, and ID tokens
// are short-lived HS256 JWTs.
type LocalProvider struct {
	mu       sync.Mutex
	users    map[string]localUser // keyed by email
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

type localUser struct {
	userID       string
	email        string
	passwordHash string
}

func NewLocalProvider(secret []byte) *LocalProvider {
	return &LocalProvider{
		users:    make(map[string]localUser),
		secret:   secret,
		tokenTTL: time.Hour,
		now:      time.Now,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return Identity{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[email]; exists {
		return Identity{}, &ProviderError{Code: "EMAIL_EXISTS", wrapped: ErrEmailInUse}
	}

	user := localUser{
		userID:       uuid.NewString(),
		email:        email,
		passwordHash: hash,
	}
	p.users[email] = user

	return p.identity(user)
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	p.mu.Lock()
	user, exists := p.users[email]
	p.mu.Unlock()

	if !exists {
		return Identity{}, &ProviderError{Code: "EMAIL_NOT_FOUND", wrapped: ErrInvalidCredentials}
	}
	if err := cryptox.VerifyPassword(password, user.passwordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return Identity{}, &ProviderError{Code: "INVALID_PASSWORD", wrapped: ErrInvalidCredentials}
		}
		return Identity{}, err
	}

	return p.identity(user)
}

func (p *LocalProvider) identity(user localUser) (Identity, error) {
	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.userID,
		"email": user.email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID:  user.userID,
		Email:   user.email,
		IDToken: signed,
	}, nil
}
