package handler

import (
	"errors"
	"net/http"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetAllNotes() ([]*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(req *contract.NoteRequest) (*contract.CreateNoteResponse, apierror.ErrorResponse)
	UpdateNote(noteId int64, req *contract.NoteRequest) (*contract.MessageResponse, apierror.ErrorResponse)
	DeleteNote(noteId int64) (*contract.MessageResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	notes, err := n.NoteService.GetAllNotes()
	if err != nil {
		return c.JSON(err.Code(), err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	var req contract.NoteRequest
	if apierr := bindNote(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := n.NoteService.CreateNote(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote binds the body, then parses the id; field validation happens in the service.
func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	var req contract.NoteRequest
	if apierr := bindNote(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	resp, apierr := n.NoteService.UpdateNote(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	resp, apierr := n.NoteService.DeleteNote(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func parseNoteID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// bindNote reports a JSON content type mismatch as 415, any other bind failure as malformed JSON.
func bindNote(c echo.Context, req *contract.NoteRequest) apierror.ErrorResponse {
	err := c.Bind(req)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, echo.ErrUnsupportedMediaType):
		return apierror.UnsupportedMediaType
	default:
		return apierror.MalformedJSONError
	}
}
