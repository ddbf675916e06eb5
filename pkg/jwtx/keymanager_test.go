package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/pkg/jwtx"
)

func TestNewEphemeralKeyManager_AllAlgorithms(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		rsaBits   int
		wantKty   string
	}{
		{"default is EdDSA", "", 0, "OKP"},
		{"ES256", jwtx.AlgorithmES256, 0, "EC"},
		{"RS256 with 2048 bits", jwtx.AlgorithmRS256, 2048, "RSA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Algorithm: tt.algorithm,
				Issuer:    "test-issuer",
				RSABits:   tt.rsaBits,
				NumKeys:   1,
			})
			require.NoError(t, err)
			require.True(t, km.IsReady())
			require.Equal(t, 1, km.NumSigners())

			jwks := km.KeySet.PublicJWKS()
			require.Len(t, jwks.Keys, 1)
			require.Equal(t, tt.wantKty, jwks.Keys[0].Kty)
			require.Equal(t, "sig", jwks.Keys[0].Use)
		})
	}
}

func TestNewEphemeralKeyManager_Errors(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err, "issuer is required")

	_, err = jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "x", Algorithm: "HS256"})
	require.Error(t, err)
}

func TestNewEphemeralKeyManager_ClampsKeyCount(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "x"})
	require.NoError(t, err)
	require.Equal(t, 3, km.NumSigners())

	km, err = jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "x", NumKeys: 50})
	require.NoError(t, err)
	require.Equal(t, 10, km.NumSigners())
}

func TestKeyManager_IssueAndVerify(t *testing.T) {
	for _, alg := range []string{jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256, jwtx.AlgorithmRS256} {
		t.Run(alg, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Algorithm: alg,
				Issuer:    "trace",
				RSABits:   2048,
				NumKeys:   2,
			})
			require.NoError(t, err)

			tok, err := km.Issue(jwtx.Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "01J0000000000000000000000"},
				Role:             "Doctor",
				Namespace:        "user",
				Name:             "Dana Scully",
			}, jwtx.DefaultSessionTTL)
			require.NoError(t, err)

			claims, err := km.Verifier.Verify(tok)
			require.NoError(t, err)
			require.Equal(t, "01J0000000000000000000000", claims.Subject)
			require.Equal(t, "Doctor", claims.Role)
			require.Equal(t, "user", claims.Namespace)
			require.Equal(t, "trace", claims.Issuer)
			require.NotEmpty(t, claims.ID)
			require.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
		})
	}
}

func TestKeyManager_IssueRejectsNonPositiveTTL(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "trace", NumKeys: 1})
	require.NoError(t, err)

	_, err = km.Issue(jwtx.Claims{}, 0)
	require.Error(t, err)
}
