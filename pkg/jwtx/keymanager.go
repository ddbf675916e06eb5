package jwtx

import (
	"crypto"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tracehealth/trace/pkg/cryptox"
)

// KeyManager owns the in-memory signing keys of one service instance. Keys
// are generated at start and never persisted, so every session token becomes
// invalid when the process restarts.
type KeyManager struct {
	Verifier *KeySetVerifier
	KeySet   *KeySet

	issuer    string
	algorithm string
	signers   []Signer
	now       func() time.Time
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Algorithm is one of "EdDSA" (default), "ES256" or "RS256".
	Algorithm string

	// Issuer is stamped into every token and enforced on verification.
	Issuer string

	// RSABits is the RSA modulus size for RS256. Defaults to 3072.
	RSABits int

	// NumKeys is how many signing keys to generate, clamped to [1, 10]. Defaults to 3.
	NumKeys int

	// Now overrides the clock used when stamping and verifying tokens.
	Now func() time.Time
}

// NewEphemeralKeyManager creates a KeyManager with freshly generated keys.
// Tokens are signed by a randomly selected key and verifiable against any.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmEdDSA
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	numKeys = min(numKeys, 10)

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)
	for i := range numKeys {
		key, err := generateKey(opts.Algorithm, opts.RSABits)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key %d: %w", i+1, err)
		}

		kid, err := cryptox.NewKeyID("trace")
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key id %d: %w", i+1, err)
		}
		signer, err := NewSigner(opts.Algorithm, kid, key)
		if err != nil {
			return nil, err
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	verifier := NewVerifier(keyset, opts.Algorithm, opts.Issuer)
	verifier.Now = opts.Now

	return &KeyManager{
		Verifier:  verifier,
		KeySet:    keyset,
		issuer:    opts.Issuer,
		algorithm: opts.Algorithm,
		signers:   signers,
		now:       opts.Now,
	}, nil
}

func generateKey(algorithm string, rsaBits int) (crypto.Signer, error) {
	switch algorithm {
	case AlgorithmEdDSA:
		return cryptox.GenerateEd25519Key()
	case AlgorithmES256:
		return cryptox.GenerateP256Key()
	case AlgorithmRS256:
		if rsaBits == 0 {
			rsaBits = 3072
		}
		return cryptox.GenerateRSAKey(rsaBits)
	default:
		return nil, fmt.Errorf("unsupported algorithm %q (supported: RS256, ES256, EdDSA)", algorithm)
	}
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}

// GetSigner returns a randomly selected signer.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 1 {
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// Issue stamps claims with the issuer and a ttl-long validity window, then signs them.
func (km *KeyManager) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("jwtx: ttl must be positive")
	}
	claims.Stamp(km.issuer, ttl, km.now())
	return km.GetSigner().Sign(claims)
}
