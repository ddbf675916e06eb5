package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/slogx"
)

// AdminService backs the administrative user-management endpoints. It only
// ever touches the User namespace, except for counting admins.
type AdminService struct {
	Store store.Store
}

// ListUsers returns every User-namespace identity without its password hash.
// A store failure is logged and yields an empty list.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.PublicIdentity, error) {
	log := slogx.FromContext(ctx)

	idents, err := s.Store.Identities(domain.NamespaceUser).List(ctx)
	if err != nil {
		log.Error("failed to list users", slog.Any("error", err))
		return []domain.PublicIdentity{}, nil
	}

	out := make([]domain.PublicIdentity, 0, len(idents))
	for _, ident := range idents {
		out = append(out, ident.Public())
	}
	return out, nil
}

// DeleteUser removes a User-namespace identity and any reset request
// outstanding for its email.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx).With(slog.String("user_id", id))

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Errorf(domain.KindValidation, "user id is required")
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		users := tx.Identities(domain.NamespaceUser)
		ident, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := users.Delete(ctx, id); err != nil {
			return err
		}
		return tx.PasswordResets().Delete(ctx, ident.Email)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("delete for unknown user")
			return domain.Errorf(domain.KindNotFound, "user not found")
		}
		log.Error("failed to delete user", slog.Any("error", err))
		return domain.Internal(err)
	}

	log.Info("user deleted")
	return nil
}

// Analytics summarizes identity counts. A store failure is logged and yields
// zero counts.
func (s *AdminService) Analytics(ctx context.Context) (domain.Analytics, error) {
	log := slogx.FromContext(ctx)

	var a domain.Analytics
	users := s.Store.Identities(domain.NamespaceUser)

	total, err := users.Count(ctx)
	if err != nil {
		log.Error("failed to count users", slog.Any("error", err))
		return domain.Analytics{}, nil
	}
	students, err := users.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		log.Error("failed to count students", slog.Any("error", err))
		return domain.Analytics{}, nil
	}
	clinicians, err := users.CountByRole(ctx, domain.RoleClinician, domain.RoleDoctor)
	if err != nil {
		log.Error("failed to count clinicians", slog.Any("error", err))
		return domain.Analytics{}, nil
	}
	admins, err := s.Store.Identities(domain.NamespaceAdmin).Count(ctx)
	if err != nil {
		log.Error("failed to count admins", slog.Any("error", err))
		return domain.Analytics{}, nil
	}

	a.TotalUsers = total
	a.Students = students
	a.Clinicians = clinicians
	a.Admins = admins
	return a, nil
}
