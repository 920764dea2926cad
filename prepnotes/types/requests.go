// prepnotes/types/requests.go
package types

type CreateNoteRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	CategoryID int      `json:"category_id" validate:"required,gt=0"`
	URLs       []string `json:"urls,omitempty" validate:"omitempty,dive,url"`
	IsPinned   *bool    `json:"is_pinned,omitempty"`
}

type UpdateNoteRequest struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	CategoryID *int      `json:"category_id,omitempty"`
	URLs       *[]string `json:"urls,omitempty"`
	IsPinned   *bool     `json:"is_pinned,omitempty"`
}

// ReorderRequest moves a note to Position within its pinned group.
type ReorderRequest struct {
	NoteID   int `json:"note_id" validate:"required,gt=0"`
	Position int `json:"position" validate:"gte=0"`
}

// SyncRequest mirrors what the auth provider's client sends after login.
type SyncRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type CreateUserRequest struct {
	ID    string  `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
