package sqlite

import (
	"context"
	"database/sql"

	"github.com/skylight-ar/account-service/internal/account/domain"
)

type accountsRepo struct {
	db *sql.DB
}

func (r *accountsRepo) Put(ctx context.Context, account domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, email, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			email = excluded.email
	`, account.UserID, account.Email, account.CreatedAt.UTC())
	return mapErr(err)
}

func (r *accountsRepo) Get(ctx context.Context, userID string) (domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, email, created_at
		FROM users
		WHERE user_id = ?
	`, userID).Scan(&a.UserID, &a.Email, &a.CreatedAt)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, email, created_at
		FROM users
		WHERE email = ?
		ORDER BY created_at
		LIMIT 1
	`, email).Scan(&a.UserID, &a.Email, &a.CreatedAt)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return a, nil
}
