package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// JWKSURL returns the provider's public key endpoint for a given base URL.
func JWKSURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/v1/.well-known/jwks.json"
}

// Verifier validates provider-issued JWTs against the provider's JWKS.
// It is the only place raw tokens are parsed.
type Verifier struct {
	jwks keyfunc.Keyfunc
}

func NewVerifier(jwksURL string) (*Verifier, error) {
	jwks, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &Verifier{jwks: jwks}, nil
}

// Verify checks the token signature and expiry and maps its claims to an
// Identity. The subject claim is mandatory.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	ident := &Identity{
		Subject: claimString(claims, "sub"),
		Email:   claimString(claims, "email"),
		Role:    claimString(claims, "role"),
	}
	if ident.Subject == "" {
		return nil, ErrInvalidToken
	}

	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		if v, ok := meta["full_name"].(string); ok {
			ident.Metadata.FullName = v
		}
		if v, ok := meta["avatar_url"].(string); ok {
			ident.Metadata.AvatarURL = v
		}
	}

	return ident, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
