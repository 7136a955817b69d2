package contract

import "time"

const (
	MessageNoteCreated = "Note created successfully"
	MessageNoteUpdated = "Note updated successfully"
	MessageNoteDeleted = "Note deleted successfully"
)

// NoteRequest is the body accepted by both create and update.
type NoteRequest struct {
	Title   string `json:"title" validate:"nonempty"`
	Content string `json:"content" validate:"nonempty"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
