package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/skylight-ar/account-service/internal/account/domain"
)

type otpCodesRepo struct {
	db *sql.DB
}

func (r *otpCodesRepo) Put(ctx context.Context, c domain.OTPChallenge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO otp_codes (email, code, attempts, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			code = excluded.code,
			attempts = excluded.attempts,
			issued_at = excluded.issued_at,
			expires_at = excluded.expires_at
	`, c.Email, c.Code, c.Attempts, c.IssuedAt.UTC(), c.ExpiresAt.UTC())
	return mapErr(err)
}

func (r *otpCodesRepo) Get(ctx context.Context, email string) (domain.OTPChallenge, error) {
	var c domain.OTPChallenge
	err := r.db.QueryRowContext(ctx, `
		SELECT email, code, attempts, issued_at, expires_at
		FROM otp_codes
		WHERE email = ?
	`, email).Scan(&c.Email, &c.Code, &c.Attempts, &c.IssuedAt, &c.ExpiresAt)
	if err != nil {
		return domain.OTPChallenge{}, mapErr(err)
	}
	return c, nil
}

func (r *otpCodesRepo) IncrementAttempts(ctx context.Context, email string) (int, error) {
	var attempts int
	err := r.db.QueryRowContext(ctx, `
		UPDATE otp_codes
		SET attempts = attempts + 1
		WHERE email = ?
		RETURNING attempts
	`, email).Scan(&attempts)
	if err != nil {
		return 0, mapErr(err)
	}
	return attempts, nil
}

func (r *otpCodesRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM otp_codes
		WHERE email = ?
	`, email)
	return mapErr(err)
}

func (r *otpCodesRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM otp_codes
		WHERE expires_at <= ?
	`, now.UTC())
	if err != nil {
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
