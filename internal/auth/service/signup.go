package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/idx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// SignupService runs the email-verified registration flow:
// a pending record is created and an OTP mailed, then confirming the OTP
// promotes the record to a User-namespace identity.
type SignupService struct {
	Store     store.Store
	Resolver  *IdentityResolver
	Hasher    Hasher
	Notifier  Notifier
	OTP       *otp.Issuer
	Validator Validator

	// Now is the clock used for identity creation times.
	Now func() time.Time
}

// RequestSignup records a pending registration and mails its OTP.
//
// 1. Normalizes and validates the input
// 2. Rejects emails already registered in either namespace
// 3. Clamps the role to a self-service role
// 4. Hashes the password
// 5. Replaces any pending signup for the email with a fresh OTP
// 6. Mails the OTP
func (s *SignupService) RequestSignup(ctx context.Context, in SignupInput) error {
	log := slogx.FromContext(ctx)

	// 1. Normalize and validate
	in.Email = domain.NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.Validator.ValidateSignup(in); err != nil {
		log.Info("signup rejected by validation", slog.Any("error", err))
		return err
	}

	// 2. Email must be unused in both namespaces
	exists, err := s.Resolver.Exists(ctx, in.Email)
	if err != nil {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Internal(err)
	}
	if exists {
		log.Info("signup attempted for registered email")
		return domain.Errorf(domain.KindConflict, "email already registered")
	}

	// 3. Only self-service roles may be requested
	role := domain.ClampSignupRole(in.Role)

	// 4. Hash the password
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Internal(err)
	}

	// 5. Supersede any earlier pending signup
	code, issuedAt, err := s.OTP.Generate()
	if err != nil {
		log.Error("failed to generate otp", slog.Any("error", err))
		return domain.Internal(err)
	}
	err = s.Store.PendingSignups().Upsert(ctx, domain.PendingSignup{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         role,
		OTP:          code,
		CreatedAt:    issuedAt,
	})
	if err != nil {
		log.Error("failed to store pending signup", slog.Any("error", err))
		return domain.Internal(err)
	}

	// 6. Mail the OTP. The pending record stays on failure and is swept later.
	if !s.Notifier.Send(ctx, in.Email, SubjectVerifyAccount, fmt.Sprintf(verifyAccountBody, code)) {
		log.Warn("signup otp delivery failed")
		return domain.Errorf(domain.KindDelivery, "failed to send verification email")
	}

	log.Info("signup otp issued", slog.String("role", string(role)))
	return nil
}

// ConfirmSignup checks code against the pending signup for email and, on a
// match, creates the identity and deletes the pending record atomically.
func (s *SignupService) ConfirmSignup(ctx context.Context, email, code string) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.Identity{}, domain.Errorf(domain.KindValidation, "email and otp are required")
	}

	pending, err := s.Store.PendingSignups().Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("signup confirmation without pending record")
			return domain.Identity{}, domain.Errorf(domain.KindNotFound, "no pending signup for this email")
		}
		log.Error("failed to fetch pending signup", slog.Any("error", err))
		return domain.Identity{}, domain.Internal(err)
	}

	if s.OTP.Expired(pending.CreatedAt) {
		if err := s.Store.PendingSignups().Delete(ctx, email); err != nil {
			log.Error("failed to delete expired pending signup", slog.Any("error", err))
		}
		log.Info("signup otp expired")
		return domain.Identity{}, domain.Errorf(domain.KindExpired, "OTP expired")
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(pending.OTP)) != 1 {
		log.Info("signup otp mismatch")
		return domain.Identity{}, domain.Errorf(domain.KindInvalidCode, "invalid OTP")
	}

	ident := domain.Identity{
		ID:           idx.New().String(),
		FullName:     pending.FullName,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         pending.Role,
		Namespace:    domain.NamespaceUser,
		CreatedAt:    now(s.Now),
	}

	// The pending record is only deleted alongside a committed insert.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Identities(domain.NamespaceAdmin).GetByEmail(ctx, email); err == nil {
			return store.ErrAlreadyExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := tx.Identities(domain.NamespaceUser).Create(ctx, ident); err != nil {
			return err
		}
		return tx.PendingSignups().Delete(ctx, email)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("signup confirmation for registered email")
			return domain.Identity{}, domain.Errorf(domain.KindConflict, "email already registered")
		}
		log.Error("failed to confirm signup", slog.Any("error", err))
		return domain.Identity{}, domain.Internal(err)
	}

	log.Info("user registered",
		slog.String("user_id", ident.ID),
		slog.String("role", string(ident.Role)),
	)
	return ident, nil
}
