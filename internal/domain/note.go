package domain

import "time"

const DefaultTag = "General"

type Note struct {
	ID          string    `json:"id"`
	Rev         string    `json:"_rev,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Tag         string `json:"tag"`
}

// UpdateNoteRequest carries partial updates. An empty field means
// "not supplied" and leaves the stored value untouched.
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

type UpdateNoteResponse struct {
	Note *Note `json:"note"`
}

type DeleteNoteResponse struct {
	Success string `json:"Success"`
	Note    *Note  `json:"note"`
}
