// Package redis is the Redis-backed store driver. Accounts live in hashes
// keyed by user id with a secondary email index; OTP challenges live in
// hashes keyed by email with native key expiry, so the housekeeping sweep has
// nothing to do here.
package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/skylight-ar/account-service/internal/account/store"
)

const (
	accountKeyPrefix = "user:"
	emailIndexPrefix = "user_email:"
	otpKeyPrefix     = "otp:"
)

type Store struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewStore(cfg Config) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewStoreWithClient wraps an existing client, used by tests.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return mapErr(err)
	}
	return nil
}

// ApplyMigrations is a no-op; Redis has no schema to migrate.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Accounts() store.Accounts { return &accountsRepo{client: s.client} }
func (s *Store) OTPCodes() store.OTPCodes { return &otpCodesRepo{client: s.client} }

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return store.ErrNotFound
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "NOAUTH") || strings.HasPrefix(msg, "NOPERM") || strings.HasPrefix(msg, "WRONGPASS") {
		return errors.Join(store.ErrDenied, err)
	}
	return errors.Join(store.ErrUnavailable, err)
}
