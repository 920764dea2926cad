// prepnotes/routes/categories.go
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"prepnotes/prepnotes/controllers"
)

// CategoryRoutes serves the seeded reference categories; no auth needed.
func CategoryRoutes(ctrl *controllers.CategoriesController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		categories, err := ctrl.GetCategories(r.Context())
		if err != nil {
			return nil, 0, err
		}
		return categories, http.StatusOK, nil
	}))
	return r
}
