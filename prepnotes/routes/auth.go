// prepnotes/routes/auth.go
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/controllers"
	"prepnotes/prepnotes/middlewares"
	"prepnotes/prepnotes/types"
	"prepnotes/prepnotes/utils/apperrors"
)

// AuthRoutes exposes the provider sync endpoint. The limiter enforces
// the one-sync-per-5s debounce policy server-side.
func AuthRoutes(ctrl *controllers.AuthController, resolver auth.Resolver, limiter *middlewares.RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(resolver))
		gr.Use(limiter.Middleware)

		gr.Post("/sync", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.SyncRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			result, err := ctrl.SyncUser(r.Context(), ident, req)
			if err != nil {
				return nil, 0, err
			}
			return result, http.StatusOK, nil
		}))
	})
	return r
}
