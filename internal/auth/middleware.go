package auth

import (
	"fmt"
	"net/http"
)

// RequireAdmin wraps a handler with the Basic auth gate. A request without
// credentials gets the 401 challenge; wrong credentials get a flat 403.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", Realm))
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		if !a.validCredentials(user, pass) {
			a.log.Warn().Str("user", user).Str("path", r.URL.Path).Msg("rejected admin credentials")
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
