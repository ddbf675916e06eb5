package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/jwtx"
)

// TestJWKSVerification verifies that session tokens can be verified by a
// third party using only the JWKS endpoint:
// 1. Register and log in
// 2. Fetch JWKS
// 3. Verify the session token against it
func TestJWKSVerification(t *testing.T) {
	srv := setupAuthServer(t)
	client := authsdk.NewSDKClient(srv.BaseURL)

	// 1. Register and log in
	user := registerUser(t, srv, client, "Ann Lee", "ann@trace.test", "pw-ann", "Doctor")
	session, err := client.AuthenticateWithPassword(t.Context(), "ann@trace.test", "pw-ann")
	require.NoError(t, err)

	// 2. Fetch the JWKS from the service
	keySet, err := client.FetchKeySet(t.Context())
	require.NoError(t, err)
	require.True(t, keySet.IsReady())

	// 3. Verify the session token
	verifier := jwtx.NewVerifier(keySet, jwtx.AlgorithmEdDSA, testIssuer)
	claims, err := verifier.Verify(session.Token())
	require.NoError(t, err)

	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "Doctor", claims.Role)
	require.Equal(t, "user", claims.Namespace)
	require.Equal(t, "Ann Lee", claims.Name)
	require.Equal(t, testIssuer, claims.Issuer)
	require.NotEmpty(t, claims.ID)
}
