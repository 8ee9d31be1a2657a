package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/store"
)

type accountsRepo struct {
	client *redis.Client
}

func (r *accountsRepo) Put(ctx context.Context, account domain.Account) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, accountKeyPrefix+account.UserID, map[string]any{
			"user_id":    account.UserID,
			"email":      account.Email,
			"created_at": account.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.Set(ctx, emailIndexPrefix+account.Email, account.UserID, 0)
		return nil
	})
	return mapErr(err)
}

func (r *accountsRepo) Get(ctx context.Context, userID string) (domain.Account, error) {
	fields, err := r.client.HGetAll(ctx, accountKeyPrefix+userID).Result()
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	if len(fields) == 0 {
		return domain.Account{}, store.ErrNotFound
	}
	return parseAccount(fields)
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	userID, err := r.client.Get(ctx, emailIndexPrefix+email).Result()
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return r.Get(ctx, userID)
}

func parseAccount(fields map[string]string) (domain.Account, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return domain.Account{
		UserID:    fields["user_id"],
		Email:     fields["email"],
		CreatedAt: createdAt,
	}, nil
}
