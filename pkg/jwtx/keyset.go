package jwtx

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet maps key ids to public verification keys. The service fills it from
// its KeyManager and serves it as JWKS; other services fill it from that JWKS
// with ResetFromJWKS.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]any // *rsa.PublicKey, ed25519.PublicKey or *ecdsa.PublicKey
	jwks []JWK          // publication order
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]any)}
}

// AddSigner publishes the signer's verification key.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK decodes j and adds it. Key ids must be unique.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := decodeJWK(j)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, dup := k.keys[j.Kid]; dup {
		return fmt.Errorf("jwtx: duplicate key id %q", j.Kid)
	}
	k.keys[j.Kid] = key
	k.jwks = append(k.jwks, j)
	return nil
}

// Get returns the verification key for kid, or ErrNoKey.
func (k *KeySet) Get(kid string) (any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	key, ok := k.keys[kid]
	if !ok {
		return nil, ErrNoKey
	}
	return key, nil
}

// PublicJWKS returns a copy of the published keys.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: slices.Clone(k.jwks)}
}

// IsReady reports whether at least one key is loaded. /readyz depends on it.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}

// ResetFromJWKS replaces the whole set. Nothing changes if any key fails to decode.
func (k *KeySet) ResetFromJWKS(set JWKS) error {
	keys := make(map[string]any, len(set.Keys))
	for _, j := range set.Keys {
		key, err := decodeJWK(j)
		if err != nil {
			return err
		}
		keys[j.Kid] = key
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = keys
	k.jwks = slices.Clone(set.Keys)
	return nil
}
