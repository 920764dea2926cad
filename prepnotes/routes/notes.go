// prepnotes/routes/notes.go
package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/controllers"
	"prepnotes/prepnotes/middlewares"
	"prepnotes/prepnotes/types"
	"prepnotes/prepnotes/utils/apperrors"
	"prepnotes/prepnotes/utils/markdown"
)

func NotesRoutes(ctrl *controllers.NotesController, renderer *markdown.Renderer, resolver auth.Resolver) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(resolver))

		// List notes, optionally filtered by category
		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			categoryID := 0
			if raw := r.URL.Query().Get("category"); raw != "" {
				id, err := strconv.Atoi(raw)
				if err != nil || id <= 0 {
					return nil, 0, apperrors.Newf(apperrors.ErrInvalidID, "invalid category id %q", raw)
				}
				categoryID = id
			}
			notes, err := ctrl.GetNotes(r.Context(), ident, categoryID)
			if err != nil {
				return nil, 0, err
			}
			return notes, http.StatusOK, nil
		}))

		// Create note
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.CreateNoteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			note, err := ctrl.CreateNote(r.Context(), ident, req)
			if err != nil {
				return nil, 0, err
			}
			return note, http.StatusCreated, nil
		}))

		// Search notes by title/content substring
		gr.Get("/search", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			q := r.URL.Query()
			page, _ := strconv.Atoi(q.Get("page"))
			pageSize, _ := strconv.Atoi(q.Get("page_size"))
			notes, pagination, err := ctrl.SearchNotes(r.Context(), ident, q.Get("q"), page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"data": notes, "pagination": pagination}, http.StatusOK, nil
		}))

		// Note counts per category
		gr.Get("/stats", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			stats, err := ctrl.StatsByCategory(r.Context(), ident)
			if err != nil {
				return nil, 0, err
			}
			return stats, http.StatusOK, nil
		}))

		// Move a note within its pinned group
		gr.Post("/reorder", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.ReorderRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			group, err := ctrl.Reorder(r.Context(), ident, req)
			if err != nil {
				return nil, 0, err
			}
			return group, http.StatusOK, nil
		}))

		// Get single note
		gr.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			note, err := ctrl.GetNoteByID(r.Context(), ident, chi.URLParam(r, "id"))
			if err != nil {
				return nil, 0, err
			}
			return note, http.StatusOK, nil
		}))

		// Update note (partial merge)
		gr.Put("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			var req types.UpdateNoteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.New(apperrors.ErrValidation, err.Error())
			}
			note, err := ctrl.UpdateNote(r.Context(), ident, chi.URLParam(r, "id"), req)
			if err != nil {
				return nil, 0, err
			}
			return note, http.StatusOK, nil
		}))

		// Delete note
		gr.Delete("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			if err := ctrl.DeleteNote(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
				return nil, 0, err
			}
			return map[string]string{"status": "deleted"}, http.StatusOK, nil
		}))

		// Toggle pin
		gr.Post("/{id}/pin", handleJSON(func(r *http.Request) (any, int, error) {
			ident := auth.IdentityFromContext(r.Context())
			note, err := ctrl.TogglePin(r.Context(), ident, chi.URLParam(r, "id"))
			if err != nil {
				return nil, 0, err
			}
			return note, http.StatusOK, nil
		}))

		// Render note content as HTML for the viewer pane
		gr.Get("/{id}/html", func(w http.ResponseWriter, r *http.Request) {
			ident := auth.IdentityFromContext(r.Context())
			note, err := ctrl.GetNoteByID(r.Context(), ident, chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, r, err)
				return
			}
			html, err := renderer.Render([]byte(note.Content))
			if err != nil {
				writeError(w, r, err)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(html)
		})
	})
	return r
}
