package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

// ownerContextKey is the context key under which the resolved owner id is
// stored for the duration of a request.
const ownerContextKey contextKey = "owner"

// Middleware authenticates API requests via Bearer token and injects the
// resolved owner id into the request context, exactly once per request.
type Middleware struct {
	auth *Authenticator
}

func NewMiddleware(a *Authenticator) *Middleware {
	return &Middleware{auth: a}
}

// Authenticate extracts and validates a Bearer token.
// WHEN valid: injects the owner id into context and calls next.
// WHEN invalid/missing/expired: returns 401 with {"error": "unauthorized"}.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			writeUnauthorized(w)
			return
		}

		ownerID, err := m.auth.Verify(token)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), ownerContextKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerFromContext returns the owner id resolved by Authenticate, or the
// empty string if the request was not authenticated.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerContextKey).(string)
	return owner
}

// writeUnauthorized writes a 401 JSON response with {"error": "unauthorized"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
