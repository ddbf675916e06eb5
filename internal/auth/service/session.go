package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/pkg/jwtx"
)

// SessionIssuer mints session tokens for authenticated identities.
type SessionIssuer struct {
	Signer TokenSigner

	// TTL defaults to jwtx.DefaultSessionTTL (24h).
	TTL time.Duration
}

func (s *SessionIssuer) Issue(ident domain.Identity) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	token, err := s.Signer.Issue(jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: ident.ID},
		Role:             string(ident.Role),
		Namespace:        string(ident.Namespace),
		Name:             ident.FullName,
	}, ttl)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return token, nil
}
