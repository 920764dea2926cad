// prepnotes/controllers/notes.go
package controllers

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/middlewares"
	"prepnotes/prepnotes/sources/psql/dao"
	"prepnotes/prepnotes/sources/psql/models"
	rediscache "prepnotes/prepnotes/sources/redis"
	"prepnotes/prepnotes/types"
	"prepnotes/prepnotes/utils/apperrors"
	"prepnotes/prepnotes/utils/validate"
)

// NotesController is the gatekeeper between the HTTP surface and the
// notes table. Every operation takes the caller's identity and scopes
// its queries to it; ownership misses surface as not-found.
type NotesController struct {
	dao    *dao.NoteDAO
	catDAO *dao.CategoryDAO
	cache  *rediscache.NotesCache
}

func NewNotesController(noteDAO *dao.NoteDAO, catDAO *dao.CategoryDAO, cache *rediscache.NotesCache) *NotesController {
	return &NotesController{dao: noteDAO, catDAO: catDAO, cache: cache}
}

// Pagination describes one page of search results.
type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

func parseNoteID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.Newf(apperrors.ErrInvalidID, "invalid note id %q", raw)
	}
	return id, nil
}

func requireIdentity(ident *auth.Identity) error {
	if ident == nil || ident.ID == "" {
		return apperrors.New(apperrors.ErrUnauthenticated, "no authenticated user")
	}
	return nil
}

// GetNotes lists the caller's notes with categories, pinned first then
// most recently updated. The unfiltered listing is served from cache
// when possible.
func (c *NotesController) GetNotes(ctx context.Context, ident *auth.Identity, categoryID int) ([]models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if categoryID == 0 {
		var cached []models.Note
		if ok, _ := c.cache.GetNotes(ctx, ident.ID, &cached); ok {
			return cached, nil
		}
	}
	notes, err := c.dao.GetAllNotesByUser(ctx, ident.ID, categoryID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "fetching notes: %v", err)
	}
	if categoryID == 0 {
		_ = c.cache.SetNotes(ctx, ident.ID, notes)
	}
	return notes, nil
}

func (c *NotesController) GetNoteByID(ctx context.Context, ident *auth.Identity, rawID string) (*models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	id, err := parseNoteID(rawID)
	if err != nil {
		return nil, err
	}
	note, err := c.dao.GetNoteByID(ctx, id, ident.ID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "fetching note %d: %v", id, err)
	}
	if note == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "note not found or not yours")
	}
	return note, nil
}

// CreateNote inserts a note owned by the caller. The owner is always the
// resolved identity, never a caller-supplied value.
func (c *NotesController) CreateNote(ctx context.Context, ident *auth.Identity, req types.CreateNoteRequest) (*models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ErrValidation, err.Error())
	}
	category, err := c.catDAO.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "checking category: %v", err)
	}
	if category == nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "unknown category %d", req.CategoryID)
	}

	note := &models.Note{
		UserID:     ident.ID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		URLs:       models.URLList(req.URLs),
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if err := c.dao.CreateNote(ctx, note); err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "creating note: %v", err)
	}
	middlewares.NoteOperationsTotal.WithLabelValues("create").Inc()
	_ = c.cache.Invalidate(ctx, ident.ID)
	return note, nil
}

// UpdateNote applies a partial merge to a note owned by the caller.
func (c *NotesController) UpdateNote(ctx context.Context, ident *auth.Identity, rawID string, req types.UpdateNoteRequest) (*models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	id, err := parseNoteID(rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.New(apperrors.ErrValidation, "title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, apperrors.New(apperrors.ErrValidation, "content cannot be empty")
		}
		updates["content"] = *req.Content
	}
	if req.CategoryID != nil {
		category, err := c.catDAO.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrDatabase, "checking category: %v", err)
		}
		if category == nil {
			return nil, apperrors.Newf(apperrors.ErrValidation, "unknown category %d", *req.CategoryID)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.URLs != nil {
		updates["urls"] = models.URLList(*req.URLs)
	}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}
	if len(updates) == 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "no fields to update")
	}

	rows, err := c.dao.UpdateNote(ctx, id, ident.ID, updates)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "updating note %d: %v", id, err)
	}
	if rows == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "note not found or not yours")
	}
	middlewares.NoteOperationsTotal.WithLabelValues("update").Inc()
	_ = c.cache.Invalidate(ctx, ident.ID)
	return c.dao.GetNoteByID(ctx, id, ident.ID)
}

// DeleteNote removes a note owned by the caller. A delete against another
// user's id matches zero rows and reports not-found.
func (c *NotesController) DeleteNote(ctx context.Context, ident *auth.Identity, rawID string) error {
	if err := requireIdentity(ident); err != nil {
		return err
	}
	id, err := parseNoteID(rawID)
	if err != nil {
		return err
	}
	rows, err := c.dao.DeleteNote(ctx, id, ident.ID)
	if err != nil {
		return apperrors.Newf(apperrors.ErrDatabase, "deleting note %d: %v", id, err)
	}
	if rows == 0 {
		return apperrors.New(apperrors.ErrNotFound, "note not found or not yours")
	}
	middlewares.NoteOperationsTotal.WithLabelValues("delete").Inc()
	_ = c.cache.Invalidate(ctx, ident.ID)
	return nil
}

// TogglePin flips the pinned flag on a note owned by the caller.
func (c *NotesController) TogglePin(ctx context.Context, ident *auth.Identity, rawID string) (*models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	id, err := parseNoteID(rawID)
	if err != nil {
		return nil, err
	}
	note, err := c.dao.TogglePin(ctx, id, ident.ID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "toggling pin on note %d: %v", id, err)
	}
	if note == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "note not found or not yours")
	}
	middlewares.NoteOperationsTotal.WithLabelValues("pin").Inc()
	_ = c.cache.Invalidate(ctx, ident.ID)
	return note, nil
}

// Reorder moves a note within its pinned group and returns the group with
// its recomputed dense sort order.
func (c *NotesController) Reorder(ctx context.Context, ident *auth.Identity, req types.ReorderRequest) ([]models.Note, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ErrValidation, err.Error())
	}
	group, err := c.dao.Reorder(ctx, ident.ID, req.NoteID, req.Position)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "note not found or not yours")
	}
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "reordering note %d: %v", req.NoteID, err)
	}
	middlewares.NoteOperationsTotal.WithLabelValues("reorder").Inc()
	_ = c.cache.Invalidate(ctx, ident.ID)
	return group, nil
}

// SearchNotes matches the caller's notes by title or content substring.
func (c *NotesController) SearchNotes(ctx context.Context, ident *auth.Identity, term string, page, pageSize int) ([]models.Note, *Pagination, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	notes, total, err := c.dao.SearchNotes(ctx, ident.ID, term, page, pageSize)
	if err != nil {
		return nil, nil, apperrors.Newf(apperrors.ErrDatabase, "searching notes: %v", err)
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	pagination := &Pagination{
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	return notes, pagination, nil
}

// StatsByCategory counts the caller's notes per category.
func (c *NotesController) StatsByCategory(ctx context.Context, ident *auth.Identity) ([]dao.CategoryCount, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	stats, err := c.dao.StatsByCategory(ctx, ident.ID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "fetching stats: %v", err)
	}
	return stats, nil
}
