package sqlite

import (
	"context"
	"strings"

	"github.com/tracehealth/trace/internal/auth/domain"
)

type identitiesRepo struct {
	db    dbtx
	table string
	ns    domain.Namespace
}

const identityColumns = `id, full_name, email, password_hash, role, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *identitiesRepo) scan(row rowScanner) (domain.Identity, error) {
	var (
		i       domain.Identity
		role    string
		created string
	)
	if err := row.Scan(&i.ID, &i.FullName, &i.Email, &i.PasswordHash, &role, &created); err != nil {
		return domain.Identity{}, err
	}
	at, err := parseTimestamp(created)
	if err != nil {
		return domain.Identity{}, err
	}
	i.Role = domain.Role(role)
	i.Namespace = r.ns
	i.CreatedAt = at
	return i, nil
}

func (r *identitiesRepo) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM `+r.table+` WHERE email = ?`, email)
	i, err := r.scan(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return i, nil
}

func (r *identitiesRepo) GetByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM `+r.table+` WHERE id = ?`, id)
	i, err := r.scan(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return i, nil
}

func (r *identitiesRepo) Create(ctx context.Context, i domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO `+r.table+` (`+identityColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		i.ID, i.FullName, i.Email, i.PasswordHash, string(i.Role), timestamp(i.CreatedAt))
	return mapConstraint(err)
}

func (r *identitiesRepo) UpdatePasswordHash(ctx context.Context, email, hash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE `+r.table+` SET password_hash = ? WHERE email = ?`, hash, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *identitiesRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *identitiesRepo) List(ctx context.Context) ([]domain.Identity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+identityColumns+` FROM `+r.table+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Identity
	for rows.Next() {
		i, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *identitiesRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.table).Scan(&n)
	return n, err
}

func (r *identitiesRepo) CountByRole(ctx context.Context, roles ...domain.Role) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}
	args := make([]any, len(roles))
	for i, role := range roles {
		args[i] = string(role)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(roles)), ", ")

	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+r.table+` WHERE role IN (`+placeholders+`)`, args...).Scan(&n)
	return n, err
}
