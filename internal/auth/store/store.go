package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracehealth/trace/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can hand out the same repositories bound to the
// transaction.
type Store interface {
	// Identities returns the repository for one namespace. Each namespace
	// lives in its own table.
	Identities(ns domain.Namespace) Identities
	PendingSignups() PendingSignups
	PasswordResets() PasswordResets

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Purge deletes every identity, pending signup and reset request.
	Purge(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	GetByEmail(ctx context.Context, email string) (domain.Identity, error)
	GetByID(ctx context.Context, id string) (domain.Identity, error)

	// Create inserts a new identity. Returns ErrAlreadyExists if the email or id is taken.
	Create(ctx context.Context, i domain.Identity) error

	// UpdatePasswordHash replaces the hash for email and reports whether a row matched.
	UpdatePasswordHash(ctx context.Context, email, hash string) (bool, error)

	// Delete removes the identity with id and reports whether a row matched.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns every identity ordered by creation time, oldest first.
	List(ctx context.Context) ([]domain.Identity, error)

	Count(ctx context.Context) (int64, error)

	// CountByRole counts identities holding any of roles.
	CountByRole(ctx context.Context, roles ...domain.Role) (int64, error)
}

type PendingSignups interface {
	// Upsert stores p, replacing any existing record for the same email.
	Upsert(ctx context.Context, p domain.PendingSignup) error
	Get(ctx context.Context, email string) (domain.PendingSignup, error)

	// Delete removes the record for email. Deleting a missing record is not an error.
	Delete(ctx context.Context, email string) error

	// DeleteIssuedBefore removes records created before cutoff and returns how many.
	DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PasswordResets interface {
	Upsert(ctx context.Context, r domain.PasswordResetRequest) error
	Get(ctx context.Context, email string) (domain.PasswordResetRequest, error)
	Delete(ctx context.Context, email string) error
	DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// IdentityTable names the table backing ns.
func IdentityTable(ns domain.Namespace) string {
	switch ns {
	case domain.NamespaceUser:
		return "users"
	case domain.NamespaceAdmin:
		return "admins"
	default:
		panic(fmt.Sprintf("store: unknown namespace %q", ns))
	}
}
