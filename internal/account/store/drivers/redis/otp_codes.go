package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/store"
)

type otpCodesRepo struct {
	client *redis.Client
}

func (r *otpCodesRepo) Put(ctx context.Context, c domain.OTPChallenge) error {
	key := otpKeyPrefix + c.Email
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// Delete first so a reissue cannot inherit the old attempt counter.
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]any{
			"email":      c.Email,
			"code":       c.Code,
			"attempts":   c.Attempts,
			"issued_at":  c.IssuedAt.UTC().Format(time.RFC3339Nano),
			"expires_at": c.ExpiresAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.ExpireAt(ctx, key, c.ExpiresAt)
		return nil
	})
	return mapErr(err)
}

func (r *otpCodesRepo) Get(ctx context.Context, email string) (domain.OTPChallenge, error) {
	fields, err := r.client.HGetAll(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		return domain.OTPChallenge{}, mapErr(err)
	}
	if len(fields) == 0 {
		return domain.OTPChallenge{}, store.ErrNotFound
	}

	issuedAt, err := time.Parse(time.RFC3339Nano, fields["issued_at"])
	if err != nil {
		return domain.OTPChallenge{}, mapErr(err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, fields["expires_at"])
	if err != nil {
		return domain.OTPChallenge{}, mapErr(err)
	}
	attempts, err := strconv.Atoi(fields["attempts"])
	if err != nil {
		return domain.OTPChallenge{}, mapErr(err)
	}

	return domain.OTPChallenge{
		Email:     fields["email"],
		Code:      fields["code"],
		Attempts:  attempts,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (r *otpCodesRepo) IncrementAttempts(ctx context.Context, email string) (int, error) {
	key := otpKeyPrefix + email
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, mapErr(err)
	}
	if exists == 0 {
		return 0, store.ErrNotFound
	}
	attempts, err := r.client.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return 0, mapErr(err)
	}
	return int(attempts), nil
}

func (r *otpCodesRepo) Delete(ctx context.Context, email string) error {
	return mapErr(r.client.Del(ctx, otpKeyPrefix+email).Err())
}

// DeleteExpired is a no-op: challenge keys carry a native TTL.
func (r *otpCodesRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
