package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the fixed lifetime of a login session token.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims issued after a successful login.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the account role, e.g. "Student" or "Admin".
	Role string `json:"role,omitempty"`

	// Namespace is the identity namespace the subject was resolved in ("user" or "admin").
	Namespace string `json:"ns,omitempty"`

	// Name is the display name of the subject.
	Name string `json:"name,omitempty"`
}

// Stamp fills the registered time, issuer and id claims relative to now.
func (c *Claims) Stamp(issuer string, ttl time.Duration, now time.Time) {
	c.Issuer = issuer
	c.IssuedAt = jwt.NewNumericDate(now)
	c.NotBefore = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if c.ID == "" {
		c.ID = NewJTI()
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf,
// allowing leeway for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
