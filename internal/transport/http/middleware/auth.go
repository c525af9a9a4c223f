package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mvidal0/nexo/internal/identity"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenVerifier turns a raw bearer token into a verified identity.
type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Missing or invalid token"}}`, http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			ident, err := verifier.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the verified identity from request context
func GetIdentity(ctx context.Context) *identity.Identity {
	return ctx.Value(IdentityKey).(*identity.Identity)
}
