package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/pkg/authsdk"
)

// TestLoginFailures covers unknown accounts, bad passwords and missing input.
func TestLoginFailures(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	registerUser(t, srv, client, "Fay Gill", "fay@trace.test", "pw-fay", "Doctor")

	_, err := client.Login(ctx, authsdk.LoginRequest{Email: "ghost@trace.test", Password: "pw"})
	assertKind(t, err, http.StatusNotFound, authsdk.KindNotFound)

	_, err = client.Login(ctx, authsdk.LoginRequest{Email: "fay@trace.test", Password: "wrong"})
	assertKind(t, err, http.StatusUnauthorized, authsdk.KindUnauthorized)

	_, err = client.Login(ctx, authsdk.LoginRequest{})
	assertKind(t, err, http.StatusBadRequest, authsdk.KindValidation)
}

// TestAdminLogin verifies admins log in through the same endpoint.
func TestAdminLogin(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	srv.createAdmin(t)

	login, err := client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	require.Equal(t, "Admin", login.User.Role)
	require.Equal(t, adminName, login.User.FullName)
}
