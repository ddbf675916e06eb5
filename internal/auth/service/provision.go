package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/idx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// AdminInput describes an operator-provisioned admin account.
type AdminInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProvisionService creates Admin-namespace identities. Admins can't sign up
// over HTTP, so this is only reachable from the operator CLI.
type ProvisionService struct {
	Store  store.Store
	Hasher Hasher
	Now    func() time.Time
}

// CreateAdmin creates an admin identity. The email must be unused in both namespaces.
func (s *ProvisionService) CreateAdmin(ctx context.Context, in AdminInput) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	in.Email = domain.NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	err := asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	))
	if err != nil {
		return domain.Identity{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Identity{}, domain.Internal(err)
	}

	ident := domain.Identity{
		ID:           idx.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Namespace:    domain.NamespaceAdmin,
		CreatedAt:    now(s.Now),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		exists, err := (&IdentityResolver{Store: tx}).Exists(ctx, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrAlreadyExists
		}
		return tx.Identities(domain.NamespaceAdmin).Create(ctx, ident)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Identity{}, domain.Errorf(domain.KindConflict, "email already registered")
		}
		log.Error("failed to create admin", slog.Any("error", err))
		return domain.Identity{}, domain.Internal(err)
	}

	log.Info("admin created", slog.String("admin_id", ident.ID))
	return ident, nil
}
