package middleware

import (
	"budget-tracker-server/src/util"
	"net/http"
)

// ReadOnlyMiddleware blocks mutations when the server runs in read-only
// mode. Auth endpoints stay open so users can still sign in and look
// around.
func ReadOnlyMiddleware(enabled bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/login":        true,
		"/api/verify-token": true,
		"/api/logout":       true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enabled && r.Method != http.MethodGet {
				if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
					next.ServeHTTP(w, r)
					return
				}
				util.Error(w, http.StatusForbidden, "read-only mode: only GET requests are allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
