package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/slogx"
)

// LoginResult is a successful login.
type LoginResult struct {
	Token    string
	Identity domain.Identity
}

type LoginService struct {
	Resolver *IdentityResolver
	Hasher   Hasher
	Sessions *SessionIssuer
}

// Login authenticates email and password against whichever namespace holds
// the email and issues a session token tagged with that namespace.
func (s *LoginService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.Errorf(domain.KindValidation, "email and password are required")
	}

	ident, err := s.Resolver.Resolve(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login for unknown email")
			return LoginResult{}, domain.Errorf(domain.KindNotFound, "user not found")
		}
		log.Error("failed to resolve identity", slog.Any("error", err))
		return LoginResult{}, domain.Internal(err)
	}

	if !s.Hasher.Verify(password, ident.PasswordHash) {
		log.Info("login password mismatch",
			slog.String("user_id", ident.ID),
			slog.String("namespace", string(ident.Namespace)),
		)
		return LoginResult{}, domain.Errorf(domain.KindUnauthorized, "invalid password")
	}

	token, err := s.Sessions.Issue(ident)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return LoginResult{}, domain.Internal(err)
	}

	log.Info("login succeeded",
		slog.String("user_id", ident.ID),
		slog.String("namespace", string(ident.Namespace)),
	)
	return LoginResult{Token: token, Identity: ident}, nil
}
