package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tracehealth/trace/internal/auth/domain"
)

type pendingSignupsRepo struct {
	db dbtx
}

func (r *pendingSignupsRepo) Upsert(ctx context.Context, p domain.PendingSignup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_signups (email, full_name, password_hash, role, otp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
			full_name     = EXCLUDED.full_name,
			password_hash = EXCLUDED.password_hash,
			role          = EXCLUDED.role,
			otp           = EXCLUDED.otp,
			created_at    = EXCLUDED.created_at`,
		p.Email, p.FullName, p.PasswordHash, string(p.Role), p.OTP, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *pendingSignupsRepo) Get(ctx context.Context, email string) (domain.PendingSignup, error) {
	var (
		p    domain.PendingSignup
		role string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT email, full_name, password_hash, role, otp, created_at
		FROM pending_signups WHERE email = $1`, email).
		Scan(&p.Email, &p.FullName, &p.PasswordHash, &role, &p.OTP, &p.CreatedAt)
	if err != nil {
		return domain.PendingSignup{}, mapNotFound(err)
	}
	p.Role = domain.Role(role)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *pendingSignupsRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE email = $1`, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *pendingSignupsRepo) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) Upsert(ctx context.Context, req domain.PasswordResetRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (email, otp, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			otp        = EXCLUDED.otp,
			created_at = EXCLUDED.created_at`,
		req.Email, req.OTP, req.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *passwordResetsRepo) Get(ctx context.Context, email string) (domain.PasswordResetRequest, error) {
	var req domain.PasswordResetRequest
	err := r.db.QueryRowContext(ctx,
		`SELECT email, otp, created_at FROM password_resets WHERE email = $1`, email).
		Scan(&req.Email, &req.OTP, &req.CreatedAt)
	if err != nil {
		return domain.PasswordResetRequest{}, mapNotFound(err)
	}
	req.CreatedAt = req.CreatedAt.UTC()
	return req, nil
}

func (r *passwordResetsRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE email = $1`, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *passwordResetsRepo) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
