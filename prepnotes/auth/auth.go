// prepnotes/auth/auth.go
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"prepnotes/prepnotes/utils/apperrors"
)

// Identity is what the external auth provider knows about the caller.
// ID is the provider subject and doubles as the local users.id value.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Resolver turns provider credentials into an Identity. The production
// resolver verifies a provider-signed bearer token; tests substitute a
// static one.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the resolved identity on the request context.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the caller's identity, or nil when the
// request never passed the auth middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// JWTResolver verifies HS256 tokens issued by the auth provider.
// Expected claims: sub (subject id), name, email.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(ctx context.Context, tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "missing subject")
	}
	ident := &Identity{ID: sub}
	if name, ok := claims["name"].(string); ok {
		ident.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	return ident, nil
}
