package auth_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tracehealth/trace/internal/auth/app"
	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/slogx"
)

/*
 * Common constants and helper functions for account service end-to-end tests.
 * The service runs in-process behind httptest with a mailbox in place of the
 * mail transport, so tests can read the OTPs it sends.
 */

const (
	testIssuer = "trace-auth"

	adminEmail    = "root@trace.test"
	adminName     = "Root Admin"
	adminPassword = "Admin123!"
)

// mailbox records outbound mail instead of delivering it.
type mailbox struct {
	mu   sync.Mutex
	msgs map[string][]string
}

func (m *mailbox) Send(_ context.Context, to, _, body string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.msgs == nil {
		m.msgs = make(map[string][]string)
	}
	m.msgs[to] = append(m.msgs[to], body)
	return true
}

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

// lastOTP returns the code from the latest message sent to addr.
func (m *mailbox) lastOTP(t *testing.T, addr string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.msgs[addr]
	require.NotEmpty(t, msgs, "no mail sent to %s", addr)
	match := otpPattern.FindStringSubmatch(msgs[len(msgs)-1])
	require.Len(t, match, 2)
	return match[1]
}

// authServer is a running service instance.
type authServer struct {
	BaseURL string
	App     *app.Application
	Mail    *mailbox
}

// setupAuthServer starts the service on a fresh sqlite database.
func setupAuthServer(t *testing.T) *authServer {
	t.Helper()
	return startAuthServer(t, baseConfig(t))
}

// setupAuthServerWithPostgres starts the service against a throwaway Postgres container.
func setupAuthServerWithPostgres(t *testing.T) *authServer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "trace",
			"POSTGRES_PASSWORD": "trace",
			"POSTGRES_DB":       "trace",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := baseConfig(t)
	cfg.DatabaseDriver = "postgres"
	cfg.DatabaseURL = fmt.Sprintf("postgres://trace:trace@%s:%s/trace?sslmode=disable", host, port.Port())
	return startAuthServer(t, cfg)
}

func baseConfig(t *testing.T) app.Config {
	t.Helper()
	dir := t.TempDir()
	return app.Config{
		Issuer:               testIssuer,
		Algorithm:            "EdDSA",
		NumKeys:              1,
		DatabaseDriver:       "sqlite",
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		MailTransport:        "log",

		// Test addresses use reserved domains with no MX records.
		CheckEmailDeliverability: false,

		PendingRecordTTL:     time.Hour,
		HousekeepingInterval: time.Hour,
		Env:                  "test",
		ShutdownGracePeriod:  time.Second,
	}
}

func startAuthServer(t *testing.T, cfg app.Config) *authServer {
	t.Helper()
	mail := &mailbox{}

	application, err := app.New(cfg, app.WithLogger(slogx.Discard()), app.WithNotifier(mail))
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Close()
	})

	return &authServer{BaseURL: srv.URL, App: application, Mail: mail}
}

// createAdmin provisions the default admin the way authctl does.
func (s *authServer) createAdmin(t *testing.T) {
	t.Helper()
	_, err := s.App.Provisioner().CreateAdmin(context.Background(), service.AdminInput{
		FullName: adminName,
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err)
}

// adminSession provisions the default admin and logs in as them.
func (s *authServer) adminSession(t *testing.T, client *authsdk.SDKClient) *authsdk.Session {
	t.Helper()
	s.createAdmin(t)
	session, err := client.AuthenticateWithPassword(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err, "admin login should succeed")
	return session
}

// registerUser runs signup and OTP confirmation and returns the created user.
func registerUser(t *testing.T, s *authServer, client *authsdk.SDKClient, fullName, email, password, role string) authsdk.UserSummary {
	t.Helper()
	ctx := t.Context()

	_, err := client.Signup(ctx, authsdk.SignupRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err, "signup should succeed")

	verified, err := client.VerifyOTP(ctx, authsdk.VerifyOTPRequest{
		Email: email,
		OTP:   s.Mail.lastOTP(t, email),
	})
	require.NoError(t, err, "OTP verification should succeed")
	return verified.User
}

// assertKind checks that err is an API error with the given status and kind.
func assertKind(t *testing.T, err error, status int, kind string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, "unexpected status for %v", err)
	require.Equal(t, kind, apiErr.Kind, "unexpected kind for %v", err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
