package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/store"
)

func TestSignup_ConfirmCreatesUser(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	err := h.Signup.RequestSignup(ctx, SignupInput{
		Email: "  Ann@Example.COM ", Password: "hunter22", FullName: " Ann Lee ", Role: "doctor",
	})
	require.NoError(t, err)

	require.Len(t, h.Notifier.Sent, 1)
	require.Equal(t, "ann@example.com", h.Notifier.Sent[0].To)
	require.Equal(t, SubjectVerifyAccount, h.Notifier.Sent[0].Subject)
	require.Contains(t, h.Notifier.Sent[0].Body, "expires in 5 minutes")

	pending, err := h.Store.PendingSignups().Get(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ann Lee", pending.FullName)
	require.Equal(t, domain.RoleDoctor, pending.Role)
	require.NotEqual(t, "hunter22", pending.PasswordHash)

	code := h.Notifier.LastCode(t, "ann@example.com")
	ident, err := h.Signup.ConfirmSignup(ctx, "ann@example.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, ident.ID)
	require.Equal(t, domain.NamespaceUser, ident.Namespace)
	require.Equal(t, domain.RoleDoctor, ident.Role)
	require.Equal(t, h.Clock.Now(), ident.CreatedAt)

	stored, err := h.Store.Identities(domain.NamespaceUser).GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, ident.ID, stored.ID)

	_, err = h.Store.PendingSignups().Get(ctx, "ann@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSignup_ConfirmationIsSingleUse(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: "bo@example.com", Password: "pw", FullName: "Bo",
	}))
	code := h.Notifier.LastCode(t, "bo@example.com")

	_, err := h.Signup.ConfirmSignup(ctx, "bo@example.com", code)
	require.NoError(t, err)

	_, err = h.Signup.ConfirmSignup(ctx, "bo@example.com", code)
	require.ErrorIs(t, err, domain.ErrNotFound)

	n, err := h.Store.Identities(domain.NamespaceUser).Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestSignup_ExpiredCodeDeletesPending(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: "cy@example.com", Password: "pw", FullName: "Cy",
	}))
	code := h.Notifier.LastCode(t, "cy@example.com")

	h.Clock.Advance(otp.Validity + time.Second)

	_, err := h.Signup.ConfirmSignup(ctx, "cy@example.com", code)
	require.ErrorIs(t, err, domain.ErrExpired)

	_, err = h.Store.PendingSignups().Get(ctx, "cy@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = h.Signup.ConfirmSignup(ctx, "cy@example.com", code)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSignup_CodeValidAtWindowEdge(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: "di@example.com", Password: "pw", FullName: "Di",
	}))
	h.Clock.Advance(otp.Validity)

	_, err := h.Signup.ConfirmSignup(ctx, "di@example.com", h.Notifier.LastCode(t, "di@example.com"))
	require.NoError(t, err)
}

func TestSignup_WrongCodeKeepsPending(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: "ed@example.com", Password: "pw", FullName: "Ed",
	}))
	code := h.Notifier.LastCode(t, "ed@example.com")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	_, err := h.Signup.ConfirmSignup(ctx, "ed@example.com", wrong)
	require.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = h.Store.PendingSignups().Get(ctx, "ed@example.com")
	require.NoError(t, err)

	_, err = h.Signup.ConfirmSignup(ctx, "ed@example.com", code)
	require.NoError(t, err)
}

func TestSignup_ResendSupersedesEarlierCode(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()
	in := SignupInput{Email: "fi@example.com", Password: "pw", FullName: "Fi"}

	require.NoError(t, h.Signup.RequestSignup(ctx, in))
	first := h.Notifier.LastCode(t, "fi@example.com")

	h.Clock.Advance(time.Minute)
	in.Role = "Clinician"
	require.NoError(t, h.Signup.RequestSignup(ctx, in))
	second := h.Notifier.LastCode(t, "fi@example.com")

	pending, err := h.Store.PendingSignups().Get(ctx, "fi@example.com")
	require.NoError(t, err)
	require.Equal(t, second, pending.OTP)
	require.Equal(t, domain.RoleClinician, pending.Role)
	require.Equal(t, h.Clock.Now(), pending.CreatedAt)

	if first != second {
		_, err = h.Signup.ConfirmSignup(ctx, "fi@example.com", first)
		require.ErrorIs(t, err, domain.ErrInvalidCode)
	}
	_, err = h.Signup.ConfirmSignup(ctx, "fi@example.com", second)
	require.NoError(t, err)
}

func TestSignup_AdminRoleIsClamped(t *testing.T) {
	h := newHarness(t)

	for i, role := range []string{"Admin", "admin", "superuser", ""} {
		t.Run(fmt.Sprintf("%q", role), func(t *testing.T) {
			email := fmt.Sprintf("clamp%d@example.com", i)
			ident := h.register(t, email, "pw", role)
			require.Equal(t, domain.RoleStudent, ident.Role)
			require.Equal(t, domain.NamespaceUser, ident.Namespace)
		})
	}
}

func TestSignup_RejectsRegisteredEmail(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	h.register(t, "gus@example.com", "pw", "Student")
	h.createAdmin(t, "root@example.com", "pw")

	for _, email := range []string{"gus@example.com", "ROOT@example.com"} {
		err := h.Signup.RequestSignup(ctx, SignupInput{Email: email, Password: "pw", FullName: "X"})
		require.ErrorIs(t, err, domain.ErrConflict, email)
	}
}

func TestSignup_ConfirmRechecksConflict(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: "hal@example.com", Password: "pw", FullName: "Hal",
	}))
	// An operator provisions the same email while the OTP is outstanding.
	h.createAdmin(t, "hal@example.com", "pw")

	_, err := h.Signup.ConfirmSignup(ctx, "hal@example.com", h.Notifier.LastCode(t, "hal@example.com"))
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = h.Store.Identities(domain.NamespaceUser).GetByEmail(ctx, "hal@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSignup_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	tests := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"missing email", SignupInput{Password: "pw", FullName: "A"}, "email"},
		{"malformed email", SignupInput{Email: "not-an-email", Password: "pw", FullName: "A"}, "email"},
		{"missing password", SignupInput{Email: "a@example.com", FullName: "A"}, "password"},
		{"missing name", SignupInput{Email: "a@example.com", Password: "pw", FullName: "   "}, "fullName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Signup.RequestSignup(ctx, tt.in)
			require.ErrorIs(t, err, domain.ErrValidation)

			var derr *domain.Error
			require.True(t, errors.As(err, &derr))
			require.Contains(t, derr.Fields, tt.field)
		})
	}
	require.Empty(t, h.Notifier.Sent)
}

func TestSignup_Deliverability(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	var looked []string
	h.Signup.Validator = Validator{
		CheckDeliverability: true,
		LookupDomain: func(email string) bool {
			looked = append(looked, email)
			return !strings.HasSuffix(email, ".invalid")
		},
	}

	err := h.Signup.RequestSignup(ctx, SignupInput{
		Email:    "ann@no-such-domain.invalid",
		Password: "pw",
		FullName: "Ann",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var derr *domain.Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, "must be a deliverable email address", derr.Fields["email"])

	_, err = h.Store.PendingSignups().Get(ctx, "ann@no-such-domain.invalid")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Empty(t, h.Notifier.Sent)

	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email:    "ann@example.com",
		Password: "pw",
		FullName: "Ann",
	}))
	require.Equal(t, []string{"ann@no-such-domain.invalid", "ann@example.com"}, looked)

	// Malformed addresses fail on syntax before any lookup.
	err = h.Signup.RequestSignup(ctx, SignupInput{Email: "not-an-email", Password: "pw", FullName: "Ann"})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Len(t, looked, 2)
}

func TestSignup_DeliveryFailure(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()
	h.Notifier.Fail = true

	err := h.Signup.RequestSignup(ctx, SignupInput{Email: "ivy@example.com", Password: "pw", FullName: "Ivy"})
	require.ErrorIs(t, err, domain.ErrDelivery)

	// The record is left for the sweep or a resend.
	_, err = h.Store.PendingSignups().Get(ctx, "ivy@example.com")
	require.NoError(t, err)
}

func TestConfirmSignup_RequiresEmailAndCode(t *testing.T) {
	h := newHarness(t)

	_, err := h.Signup.ConfirmSignup(testContext(), "", "123456")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = h.Signup.ConfirmSignup(testContext(), "a@example.com", " ")
	require.ErrorIs(t, err, domain.ErrValidation)
}
