package service

import (
	"context"
	"time"

	"github.com/tracehealth/trace/pkg/jwtx"
)

// Notifier delivers an email. It reports failure as false and never returns an error.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// Hasher produces and checks salted slow password hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenSigner signs session claims valid for ttl.
type TokenSigner interface {
	Issue(claims jwtx.Claims, ttl time.Duration) (string, error)
}

// Outbound email content.
const (
	SubjectVerifyAccount = "TRACE - Verify Account"
	SubjectResetPassword = "TRACE - Reset Password"

	verifyAccountBody = "Your OTP is: %s\n\nThis code expires in 5 minutes."
	resetPasswordBody = "Your password reset OTP is: %s\n\nThis code expires in 5 minutes."
)

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now().UTC()
}
