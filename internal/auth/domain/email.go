package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims and lower-cases an address and strips any display
// name, so "  Jane <Jane@Example.COM> " becomes "jane@example.com". Input that
// does not parse is returned trimmed and lower-cased for the validator to reject.
func NormalizeEmail(raw string) string {
	s := strings.TrimSpace(raw)
	if addr, err := mail.ParseAddress(s); err == nil {
		s = addr.Address
	}
	return strings.ToLower(s)
}
