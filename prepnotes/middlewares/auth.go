// prepnotes/middlewares/auth.go
package middlewares

import (
	"net/http"
	"strings"

	"prepnotes/prepnotes/auth"
)

// AuthMiddleware resolves the bearer token into an Identity and stores it
// on the request context. Requests without a resolvable identity get 401.
func AuthMiddleware(resolver auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ident, err := resolver.Resolve(r.Context(), parts[1])
			if err != nil || ident == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := auth.WithIdentity(r.Context(), ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
