package middleware

import (
	"net/http"
	"strings"

	"github.com/sggmico/skitchen/internal/auth"
)

// RequireSession middleware gates admin mutation endpoints behind an active
// session. The token comes as "Authorization: Bearer <token>"; on success the
// verified session is attached to the request context.
func RequireSession(verifier *auth.Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "Unauthorized: session required", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				http.Error(w, "Unauthorized: malformed authorization header", http.StatusUnauthorized)
				return
			}

			sess, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "Unauthorized: invalid or expired session", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}
