package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/pkg/authsdk"
)

// TestPasswordResetFlow verifies the forgot/reset round trip:
// 1. Request a reset code
// 2. Reset with the mailed code
// 3. Old password fails, new one works
func TestPasswordResetFlow(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	registerUser(t, srv, client, "Gus Hale", "gus@trace.test", "old-pw", "Student")

	// 1. Request a reset code
	resp, err := client.ForgotPassword(ctx, "gus@trace.test")
	require.NoError(t, err)
	require.Equal(t, "Reset code sent to email", resp.Message)

	// 2. Reset with the mailed code
	resp, err = client.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Email:       "gus@trace.test",
		OTP:         srv.Mail.lastOTP(t, "gus@trace.test"),
		NewPassword: "new-pw",
	})
	require.NoError(t, err)
	require.Equal(t, "Password changed successfully. Please Login.", resp.Message)

	// 3. Old password fails, new one works
	_, err = client.Login(ctx, authsdk.LoginRequest{Email: "gus@trace.test", Password: "old-pw"})
	assertKind(t, err, http.StatusUnauthorized, authsdk.KindUnauthorized)

	_, err = client.AuthenticateWithPassword(ctx, "gus@trace.test", "new-pw")
	require.NoError(t, err)
}

// TestPasswordResetFailures covers unknown accounts and missing requests.
func TestPasswordResetFailures(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)
	ctx := t.Context()

	_, err := client.ForgotPassword(ctx, "ghost@trace.test")
	assertKind(t, err, http.StatusNotFound, authsdk.KindNotFound)

	_, err = client.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Email:       "ghost@trace.test",
		OTP:         "123456",
		NewPassword: "pw",
	})
	assertKind(t, err, http.StatusNotFound, authsdk.KindNotFound)
}
