package sqlite

import (
	"context"
	"time"

	"github.com/tracehealth/trace/internal/auth/domain"
)

type pendingSignupsRepo struct {
	db dbtx
}

func (r *pendingSignupsRepo) Upsert(ctx context.Context, p domain.PendingSignup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_signups (email, full_name, password_hash, role, otp, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			full_name     = excluded.full_name,
			password_hash = excluded.password_hash,
			role          = excluded.role,
			otp           = excluded.otp,
			created_at    = excluded.created_at`,
		p.Email, p.FullName, p.PasswordHash, string(p.Role), p.OTP, timestamp(p.CreatedAt))
	return err
}

func (r *pendingSignupsRepo) Get(ctx context.Context, email string) (domain.PendingSignup, error) {
	var (
		p       domain.PendingSignup
		role    string
		created string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT email, full_name, password_hash, role, otp, created_at
		FROM pending_signups WHERE email = ?`, email).
		Scan(&p.Email, &p.FullName, &p.PasswordHash, &role, &p.OTP, &created)
	if err != nil {
		return domain.PendingSignup{}, mapNotFound(err)
	}
	if p.CreatedAt, err = parseTimestamp(created); err != nil {
		return domain.PendingSignup{}, err
	}
	p.Role = domain.Role(role)
	return p, nil
}

func (r *pendingSignupsRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE email = ?`, email)
	return err
}

func (r *pendingSignupsRepo) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE created_at < ?`, timestamp(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) Upsert(ctx context.Context, req domain.PasswordResetRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (email, otp, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			otp        = excluded.otp,
			created_at = excluded.created_at`,
		req.Email, req.OTP, timestamp(req.CreatedAt))
	return err
}

func (r *passwordResetsRepo) Get(ctx context.Context, email string) (domain.PasswordResetRequest, error) {
	var (
		req     domain.PasswordResetRequest
		created string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT email, otp, created_at FROM password_resets WHERE email = ?`, email).
		Scan(&req.Email, &req.OTP, &created)
	if err != nil {
		return domain.PasswordResetRequest{}, mapNotFound(err)
	}
	if req.CreatedAt, err = parseTimestamp(created); err != nil {
		return domain.PasswordResetRequest{}, err
	}
	return req, nil
}

func (r *passwordResetsRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE email = ?`, email)
	return err
}

func (r *passwordResetsRepo) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE created_at < ?`, timestamp(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
