// prepnotes/routes/users.go
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

func UserRoutes(ctrl *controllers.UserController, resolver auth.Resolver) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(resolver))

		// Own profile, auto-provisioned on first read
		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			profile, err := ctrl.GetProfile(r.Context(), ident)
			if err != nil {
				return nil, 0, err
			}
			return profile, http.StatusOK, nil
		}))

		gr.Put("/me", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.UpdateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			user, err := ctrl.UpdateProfile(r.Context(), ident, req)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"user": user}, http.StatusOK, nil
		}))

		gr.Delete("/me", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			if err := ctrl.DeleteProfile(r.Context(), ident); err != nil {
				return nil, 0, err
			}
			return map[string]string{"status": "deleted"}, http.StatusOK, nil
		}))

		// Cross-user reads return 403; only the subject may read itself
		gr.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			user, err := ctrl.GetUser(r.Context(), ident, chi.URLParam(r, "id"))
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"user": user}, http.StatusOK, nil
		}))

		// Admin-style create
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.CreateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			user, err := ctrl.CreateUser(r.Context(), ident, req)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"user": user}, http.StatusCreated, nil
		}))
	})

	return r
}
