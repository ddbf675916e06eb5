package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/pkg/authsdk"
)

// seedUsers registers two students and two clinical staff.
func seedUsers(t *testing.T, srv *authServer, client *authsdk.SDKClient) []authsdk.UserSummary {
	t.Helper()
	return []authsdk.UserSummary{
		registerUser(t, srv, client, "Student One", "s1@trace.test", "pw", "Student"),
		registerUser(t, srv, client, "Student Two", "s2@trace.test", "pw", "Student"),
		registerUser(t, srv, client, "Clin One", "c1@trace.test", "pw", "Clinician"),
		registerUser(t, srv, client, "Doc One", "d1@trace.test", "pw", "Doctor"),
	}
}

// TestAdminEndpointsRequireAdmin verifies the admin surface rejects
// anonymous callers and user sessions.
func TestAdminEndpointsRequireAdmin(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	anonymous := client.NewSessionFromToken("")
	_, err := anonymous.ListUsers(ctx)
	assertKind(t, err, http.StatusUnauthorized, authsdk.KindUnauthorized)

	registerUser(t, srv, client, "Hal Ito", "hal@trace.test", "pw-hal", "Doctor")
	user, err := client.AuthenticateWithPassword(ctx, "hal@trace.test", "pw-hal")
	require.NoError(t, err)

	_, err = user.ListUsers(ctx)
	assertKind(t, err, http.StatusForbidden, authsdk.KindForbidden)
	_, err = user.GetAnalytics(ctx)
	assertKind(t, err, http.StatusForbidden, authsdk.KindForbidden)
	err = user.DeleteUser(ctx, "anything")
	assertKind(t, err, http.StatusForbidden, authsdk.KindForbidden)
}

// TestAdminFlow verifies listing, analytics and deletion:
// 1. Seed users and log in as admin
// 2. List users and read analytics
// 3. Delete one user and observe the change
func TestAdminFlow(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	// 1. Seed users and log in as admin
	seeded := seedUsers(t, srv, client)
	admin := srv.adminSession(t, client)

	// 2. List users and read analytics
	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, len(seeded))
	for _, u := range users {
		require.NotEmpty(t, u.ID)
		require.NotEqual(t, adminEmail, u.Email, "admins are not listed as users")
	}

	stats, err := admin.GetAnalytics(ctx)
	require.NoError(t, err)
	require.Equal(t, authsdk.AnalyticsResponse{TotalUsers: 4, Students: 2, Clinicians: 2, Admins: 1}, *stats)

	// 3. Delete one user and observe the change
	require.NoError(t, admin.DeleteUser(ctx, seeded[0].ID))

	err = admin.DeleteUser(ctx, seeded[0].ID)
	assertKind(t, err, http.StatusNotFound, authsdk.KindNotFound)

	stats, err = admin.GetAnalytics(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalUsers)
	require.Equal(t, int64(1), stats.Students)

	_, err = client.Login(ctx, authsdk.LoginRequest{Email: seeded[0].Email, Password: "pw"})
	assertKind(t, err, http.StatusNotFound, authsdk.KindNotFound)
}

// TestAdminFlowPostgres runs the admin flow against a Postgres backend.
func TestAdminFlowPostgres(t *testing.T) {
	srv := setupAuthServerWithPostgres(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	seedUsers(t, srv, client)
	admin := srv.adminSession(t, client)

	stats, err := admin.GetAnalytics(ctx)
	require.NoError(t, err)
	require.Equal(t, authsdk.AnalyticsResponse{TotalUsers: 4, Students: 2, Clinicians: 2, Admins: 1}, *stats)
}
