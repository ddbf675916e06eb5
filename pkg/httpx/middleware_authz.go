package httpx

import (
	"net/http"
	"slices"
)

// RequireNamespace allows the request only when the authenticated token was
// issued for one of the given identity namespaces. It must run after AuthnMiddleware.
func RequireNamespace(allowed ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if !slices.Contains(allowed, claims.Namespace) {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				WriteJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient privileges", "kind": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
