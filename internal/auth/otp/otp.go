// Package otp issues the six-digit one-time codes shared by signup
// confirmation and password reset.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	// Validity is how long a code stays usable after issue.
	Validity = 300 * time.Second

	minCode = 100000
	maxCode = 999999
)

// Issuer generates codes and judges their expiry against a clock.
type Issuer struct {
	// Now is the clock. Defaults to time.Now in UTC.
	Now func() time.Time

	// Rand is the entropy source. Defaults to crypto/rand.Reader.
	Rand io.Reader
}

func NewIssuer() *Issuer {
	return &Issuer{}
}

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now().UTC()
}

// Generate returns a code drawn uniformly from 100000-999999 and its issue time.
func (i *Issuer) Generate() (string, time.Time, error) {
	src := i.Rand
	if src == nil {
		src = rand.Reader
	}
	n, err := rand.Int(src, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+minCode), i.now(), nil
}

// IsExpired reports whether a code issued at issuedAt is no longer valid at now.
// A code is still valid at exactly Validity after issue.
func IsExpired(issuedAt, now time.Time) bool {
	return now.Sub(issuedAt) > Validity
}

// Expired is IsExpired against the issuer's clock.
func (i *Issuer) Expired(issuedAt time.Time) bool {
	return IsExpired(issuedAt, i.now())
}
