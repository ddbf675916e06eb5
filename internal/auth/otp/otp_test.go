package otp

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateRange(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := &Issuer{Now: func() time.Time { return fixed }}

	for range 500 {
		code, at, err := iss.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Equal(t, fixed, at)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateUsesEntropySource(t *testing.T) {
	// An all-zero source maps to the lowest code.
	iss := &Issuer{Rand: bytes.NewReader(make([]byte, 64))}
	code, _, err := iss.Generate()
	require.NoError(t, err)
	require.Equal(t, "100000", code)

	_, _, err = (&Issuer{Rand: bytes.NewReader(nil)}).Generate()
	require.Error(t, err)
}

func TestIsExpiredBoundary(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.False(t, IsExpired(issued, issued))
	require.False(t, IsExpired(issued, issued.Add(299*time.Second)))
	require.False(t, IsExpired(issued, issued.Add(300*time.Second)))
	require.True(t, IsExpired(issued, issued.Add(301*time.Second)))
}

func TestIssuerExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := &Issuer{Now: func() time.Time { return now }}

	require.False(t, iss.Expired(now.Add(-4*time.Minute)))
	require.True(t, iss.Expired(now.Add(-6*time.Minute)))
}
