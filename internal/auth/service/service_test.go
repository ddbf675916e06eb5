package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/store/drivers/sqlite"
	"github.com/tracehealth/trace/pkg/cryptox"
	"github.com/tracehealth/trace/pkg/jwtx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// clock is a settable time source shared by the services under test.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sentMail struct {
	To, Subject, Body string
}

// recordingNotifier keeps every message and fails while Fail is set.
type recordingNotifier struct {
	mu   sync.Mutex
	Sent []sentMail
	Fail bool
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return false
	}
	n.Sent = append(n.Sent, sentMail{To: to, Subject: subject, Body: body})
	return true
}

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

// LastCode extracts the OTP from the most recent message to addr.
func (n *recordingNotifier) LastCode(t *testing.T, addr string) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.Sent) - 1; i >= 0; i-- {
		if n.Sent[i].To == addr {
			m := otpPattern.FindStringSubmatch(n.Sent[i].Body)
			require.Len(t, m, 2)
			return m[1]
		}
	}
	t.Fatalf("no mail sent to %s", addr)
	return ""
}

type harness struct {
	Store     *sqlite.Store
	Clock     *clock
	Notifier  *recordingNotifier
	Keys      *jwtx.KeyManager
	Signup    *SignupService
	Login     *LoginService
	Reset     *ResetService
	Admin     *AdminService
	Provision *ProvisionService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clk := &clock{t: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	hasher := cryptox.NewPasswordHasher("test-pepper")
	issuer := &otp.Issuer{Now: clk.Now}
	resolver := &IdentityResolver{Store: st}

	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  "https://trace.test",
		NumKeys: 1,
		Now:     clk.Now,
	})
	require.NoError(t, err)

	return &harness{
		Store:    st,
		Clock:    clk,
		Notifier: notifier,
		Keys:     keys,
		Signup: &SignupService{
			Store: st, Resolver: resolver, Hasher: hasher,
			Notifier: notifier, OTP: issuer, Now: clk.Now,
		},
		Login: &LoginService{
			Resolver: resolver, Hasher: hasher,
			Sessions: &SessionIssuer{Signer: keys},
		},
		Reset: &ResetService{
			Store: st, Resolver: resolver, Hasher: hasher,
			Notifier: notifier, OTP: issuer,
		},
		Admin:     &AdminService{Store: st},
		Provision: &ProvisionService{Store: st, Hasher: hasher, Now: clk.Now},
	}
}

func testContext() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}

// register runs a full signup and returns the created identity.
func (h *harness) register(t *testing.T, email, password, role string) domain.Identity {
	t.Helper()
	ctx := testContext()
	require.NoError(t, h.Signup.RequestSignup(ctx, SignupInput{
		Email: email, Password: password, FullName: "Test " + role, Role: role,
	}))
	ident, err := h.Signup.ConfirmSignup(ctx, email, h.Notifier.LastCode(t, email))
	require.NoError(t, err)
	return ident
}

func (h *harness) createAdmin(t *testing.T, email, password string) domain.Identity {
	t.Helper()
	ident, err := h.Provision.CreateAdmin(testContext(), AdminInput{
		FullName: "Ops Admin", Email: email, Password: password,
	})
	require.NoError(t, err)
	return ident
}
