package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/slogx"
)

// errNoIdentity aborts a reset transaction when neither namespace holds the email.
var errNoIdentity = errors.New("no identity for reset email")

// ResetService runs the OTP-gated password reset flow for both namespaces.
type ResetService struct {
	Store     store.Store
	Resolver  *IdentityResolver
	Hasher    Hasher
	Notifier  Notifier
	OTP       *otp.Issuer
	Validator Validator
}

// RequestReset issues and mails a reset OTP for a registered email,
// superseding any outstanding request.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if err := s.Validator.ValidateEmail(email); err != nil {
		return err
	}

	exists, err := s.Resolver.Exists(ctx, email)
	if err != nil {
		log.Error("failed to resolve reset email", slog.Any("error", err))
		return domain.Internal(err)
	}
	if !exists {
		log.Info("reset requested for unknown email")
		return domain.Errorf(domain.KindNotFound, "user not found")
	}

	code, issuedAt, err := s.OTP.Generate()
	if err != nil {
		log.Error("failed to generate otp", slog.Any("error", err))
		return domain.Internal(err)
	}
	err = s.Store.PasswordResets().Upsert(ctx, domain.PasswordResetRequest{
		Email:     email,
		OTP:       code,
		CreatedAt: issuedAt,
	})
	if err != nil {
		log.Error("failed to store reset request", slog.Any("error", err))
		return domain.Internal(err)
	}

	if !s.Notifier.Send(ctx, email, SubjectResetPassword, fmt.Sprintf(resetPasswordBody, code)) {
		log.Warn("reset otp delivery failed")
		return domain.Errorf(domain.KindDelivery, "failed to send reset email")
	}

	log.Info("reset otp issued")
	return nil
}

// ConfirmReset replaces the password for in.Email once in.OTP matches the
// outstanding request.
//
// 1. Looks up the request (NotFound)
// 2. Rejects and deletes an expired request (Expired)
// 3. Compares the code (InvalidCode, request kept)
// 4. Updates the User namespace, falling back to Admin, and deletes the request
func (s *ResetService) ConfirmReset(ctx context.Context, in ResetInput) error {
	log := slogx.FromContext(ctx)

	in.Email = domain.NormalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)
	if err := s.Validator.ValidateReset(in); err != nil {
		return err
	}

	// 1. Outstanding request
	req, err := s.Store.PasswordResets().Get(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("reset confirmation without request")
			return domain.Errorf(domain.KindNotFound, "no reset request for this email")
		}
		log.Error("failed to fetch reset request", slog.Any("error", err))
		return domain.Internal(err)
	}

	// 2. Expiry
	if s.OTP.Expired(req.CreatedAt) {
		if err := s.Store.PasswordResets().Delete(ctx, in.Email); err != nil {
			log.Error("failed to delete expired reset request", slog.Any("error", err))
		}
		log.Info("reset otp expired")
		return domain.Errorf(domain.KindExpired, "OTP expired")
	}

	// 3. Code
	if subtle.ConstantTimeCompare([]byte(in.OTP), []byte(req.OTP)) != 1 {
		log.Info("reset otp mismatch")
		return domain.Errorf(domain.KindInvalidCode, "invalid OTP")
	}

	hash, err := s.Hasher.Hash(in.NewPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Internal(err)
	}

	// 4. Update and consume
	var updated domain.Namespace
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, ns := range domain.Namespaces {
			matched, err := tx.Identities(ns).UpdatePasswordHash(ctx, in.Email, hash)
			if err != nil {
				return err
			}
			if matched {
				updated = ns
				return tx.PasswordResets().Delete(ctx, in.Email)
			}
		}
		return errNoIdentity
	})
	if errors.Is(err, errNoIdentity) {
		// The identity was deleted after the request was issued.
		if err := s.Store.PasswordResets().Delete(ctx, in.Email); err != nil {
			log.Error("failed to delete orphaned reset request", slog.Any("error", err))
		}
		log.Info("reset confirmed for missing identity")
		return domain.Errorf(domain.KindNotFound, "user not found")
	}
	if err != nil {
		log.Error("failed to reset password", slog.Any("error", err))
		return domain.Internal(err)
	}

	log.Info("password reset", slog.String("namespace", string(updated)))
	return nil
}
