package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
)

// JWK is a public signing key as published at /.well-known/jwks.json (RFC 7517).
// Only the three key shapes a KeyManager can generate are represented.
type JWK struct {
	Kty string `json:"kty"`           // "OKP" (Ed25519), "EC" (P-256) or "RSA"
	Use string `json:"use,omitempty"` // always "sig" for session keys
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`

	N string `json:"n,omitempty"` // RSA modulus
	E string `json:"e,omitempty"` // RSA exponent

	Crv string `json:"crv,omitempty"` // "Ed25519" or "P-256"
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"` // EC only
}

// JWKS is a JSON Web Key Set.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

const p256Size = 32

var b64 = base64.RawURLEncoding

// NewRSAJWK encodes an RS256 verification key.
func NewRSAJWK(kid, use, alg string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA", Use: use, Alg: alg, Kid: kid,
		N: b64.EncodeToString(pub.N.Bytes()),
		E: b64.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// NewEd25519JWK encodes an EdDSA verification key.
func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP", Use: use, Alg: alg, Kid: kid,
		Crv: "Ed25519",
		X:   b64.EncodeToString(pub),
	}
}

// NewES256JWK encodes an ES256 verification key. Coordinates are left-padded
// to the fixed P-256 field size.
func NewES256JWK(kid, use, alg string, pub *ecdsa.PublicKey) JWK {
	x := make([]byte, p256Size)
	y := make([]byte, p256Size)
	pub.X.FillBytes(x)
	pub.Y.FillBytes(y)
	return JWK{
		Kty: "EC", Use: use, Alg: alg, Kid: kid,
		Crv: "P-256",
		X:   b64.EncodeToString(x),
		Y:   b64.EncodeToString(y),
	}
}

// decodeJWK is the inverse of the New*JWK encoders.
func decodeJWK(j JWK) (any, error) {
	switch {
	case j.Kty == "RSA":
		n, err := decodeField(j, "n", j.N)
		if err != nil {
			return nil, err
		}
		e, err := decodeField(j, "e", j.E)
		if err != nil {
			return nil, err
		}
		return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(new(big.Int).SetBytes(e).Int64())}, nil

	case j.Kty == "OKP" && j.Crv == "Ed25519":
		x, err := decodeField(j, "x", j.X)
		if err != nil {
			return nil, err
		}
		if len(x) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("jwtx: key %q: bad Ed25519 key size %d", j.Kid, len(x))
		}
		return ed25519.PublicKey(x), nil

	case j.Kty == "EC" && j.Crv == "P-256":
		x, err := decodeField(j, "x", j.X)
		if err != nil {
			return nil, err
		}
		y, err := decodeField(j, "y", j.Y)
		if err != nil {
			return nil, err
		}
		pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: new(big.Int).SetBytes(x), Y: new(big.Int).SetBytes(y)}
		if !pub.Curve.IsOnCurve(pub.X, pub.Y) {
			return nil, fmt.Errorf("jwtx: key %q: point not on P-256", j.Kid)
		}
		return pub, nil
	}
	return nil, fmt.Errorf("%w: kty=%q crv=%q", errUnsupportedJWK, j.Kty, j.Crv)
}

var errUnsupportedJWK = errors.New("jwtx: unsupported key type")

func decodeField(j JWK, name, v string) ([]byte, error) {
	if v == "" {
		return nil, fmt.Errorf("jwtx: key %q: missing %q", j.Kid, name)
	}
	b, err := b64.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("jwtx: key %q: field %q: %w", j.Kid, name, err)
	}
	return b, nil
}
