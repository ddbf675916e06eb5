package sqlite

import (
	"context"
	"database/sql"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the outer DB stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Purge(ctx context.Context) error { return purge(ctx, t.tx) }

func (t *txStore) Identities(ns domain.Namespace) store.Identities {
	return &identitiesRepo{db: t.tx, table: store.IdentityTable(ns), ns: ns}
}
func (t *txStore) PendingSignups() store.PendingSignups { return &pendingSignupsRepo{db: t.tx} }
func (t *txStore) PasswordResets() store.PasswordResets { return &passwordResetsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrations are applied before any tx is started.
func (t *txStore) ApplyMigrations() error { return nil }
