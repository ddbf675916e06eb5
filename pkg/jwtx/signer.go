package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported JWT signing algorithms
const (
	AlgorithmRS256 = "RS256"
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type keySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	jwk    JWK
}

// NewSigner wraps a private key as a Signer for alg. The key type must match
// the algorithm: ed25519.PrivateKey for EdDSA, *ecdsa.PrivateKey (P-256) for
// ES256 and *rsa.PrivateKey for RS256.
func NewSigner(alg, kid string, key crypto.Signer) (Signer, error) {
	if key == nil {
		return nil, errors.New("jwtx: nil signing key")
	}

	s := &keySigner{kid: kid, key: key}
	switch alg {
	case AlgorithmEdDSA:
		pub, ok := key.Public().(ed25519.PublicKey)
		if !ok {
			return nil, errors.New("jwtx: not Ed25519 private key")
		}
		s.method = jwt.SigningMethodEdDSA
		s.jwk = NewEd25519JWK(kid, "sig", alg, pub)
	case AlgorithmES256:
		pub, ok := key.Public().(*ecdsa.PublicKey)
		if !ok || pub.Curve.Params().Name != "P-256" {
			return nil, errors.New("jwtx: not ECDSA P-256 private key")
		}
		s.method = jwt.SigningMethodES256
		s.jwk = NewES256JWK(kid, "sig", alg, pub)
	case AlgorithmRS256:
		pub, ok := key.Public().(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("jwtx: not RSA private key")
		}
		s.method = jwt.SigningMethodRS256
		s.jwk = NewRSAJWK(kid, "sig", alg, pub)
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: RS256, ES256, EdDSA)", alg)
	}
	return s, nil
}

func (s *keySigner) Alg() string    { return s.method.Alg() }
func (s *keySigner) KID() string    { return s.kid }
func (s *keySigner) PublicJWK() JWK { return s.jwk }

// Sign takes your claims and turns them into a signed JWT string.
func (s *keySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
