package dto

import "time"

type CreateNoteRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdateNoteRequest carries a partial update. Empty strings mean "not
// provided": an update cannot clear a field, only replace it.
type UpdateNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type NoteResponse struct {
	Id        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserId    uint      `json:"user_id"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
