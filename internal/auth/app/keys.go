package app

import (
	"fmt"
	"log/slog"

	"github.com/tracehealth/trace/pkg/jwtx"
)

// InitAuthKeys creates a new KeyManager with the configured algorithm.
//
// Keys are generated on startup and stored only in memory, so every session
// token becomes invalid when the service restarts.
//
// Supported algorithms: RS256, ES256, EdDSA
//
// By default, generates 3 signing keys with random identifiers. Use
// AUTH_NUM_KEYS to customize.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		RSABits:   cfg.RSABits,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)

	logger.Warn("all existing session tokens are now invalid due to key rotation on startup")

	return keyManager, nil
}
