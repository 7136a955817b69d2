package apierror

import (
	"fmt"
	"net/http"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

var (
	MalformedJSONError   = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	UnsupportedMediaType = NewSimple(http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	InternalServerError  = NewSimple(http.StatusInternalServerError, "Internal server error")

	MissingFieldsError = NewSimple(http.StatusBadRequest, "Title and content are required")
	InvalidIDError     = NewSimple(http.StatusBadRequest, "Invalid note ID")
	NotFoundError      = NewSimple(http.StatusNotFound, "Note not found")

	/*
	 * Persistence failures, one fixed message per operation
	 */
	FetchNotesError = NewSimple(http.StatusInternalServerError, "Failed to fetch notes")
	CreateNoteError = NewSimple(http.StatusInternalServerError, "Failed to create note")
	UpdateNoteError = NewSimple(http.StatusInternalServerError, "Failed to update note")
	DeleteNoteError = NewSimple(http.StatusInternalServerError, "Failed to delete note")
)

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

// FromStatus builds an error for a bare HTTP status, using the standard status text
// when no message is given.
func FromStatus(status int, msg string) *APIError {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return NewSimple(status, msg)
}
