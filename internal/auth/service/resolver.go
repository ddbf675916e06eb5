package service

import (
	"context"
	"errors"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/store"
)

// IdentityResolver looks an email up across both namespaces, User first.
type IdentityResolver struct {
	Store store.Store
}

// Resolve returns the identity for email, tagged with the namespace it was
// found in. Returns store.ErrNotFound if neither namespace has it.
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (domain.Identity, error) {
	for _, ns := range domain.Namespaces {
		ident, err := r.Store.Identities(ns).GetByEmail(ctx, email)
		if err == nil {
			return ident, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, err
		}
	}
	return domain.Identity{}, store.ErrNotFound
}

// Exists reports whether email names an identity in either namespace.
func (r *IdentityResolver) Exists(ctx context.Context, email string) (bool, error) {
	_, err := r.Resolve(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
