package service

import (
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindAll() ([]*entity.Note, error)
	Insert(title, content string) (int64, error)
	Update(id int64, title, content string) (bool, error)
	Delete(id int64) (bool, error)
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

func (n *DefaultNoteService) GetAllNotes() ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.FetchNotesError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) CreateNote(req *contract.NoteRequest) (*contract.CreateNoteResponse, apierror.ErrorResponse) {
	if apierr := n.validate(req); apierr != nil {
		return nil, apierr
	}

	id, err := n.NoteRepo.Insert(req.Title, req.Content)
	if err != nil {
		log.Errorf("failed to create note: %v", err)
		return nil, apierror.CreateNoteError
	}

	return &contract.CreateNoteResponse{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Message: contract.MessageNoteCreated,
	}, nil
}

func (n *DefaultNoteService) UpdateNote(noteId int64, req *contract.NoteRequest) (*contract.MessageResponse, apierror.ErrorResponse) {
	if apierr := n.validate(req); apierr != nil {
		return nil, apierr
	}

	found, err := n.NoteRepo.Update(noteId, req.Title, req.Content)
	if err != nil {
		log.Errorf("failed to update note %d: %v", noteId, err)
		return nil, apierror.UpdateNoteError
	}

	if !found {
		return nil, apierror.NotFoundError
	}
	return &contract.MessageResponse{Message: contract.MessageNoteUpdated}, nil
}

func (n *DefaultNoteService) DeleteNote(noteId int64) (*contract.MessageResponse, apierror.ErrorResponse) {
	found, err := n.NoteRepo.Delete(noteId)
	if err != nil {
		log.Errorf("failed to delete note %d: %v", noteId, err)
		return nil, apierror.DeleteNoteError
	}

	if !found {
		return nil, apierror.NotFoundError
	}
	return &contract.MessageResponse{Message: contract.MessageNoteDeleted}, nil
}

// validate rejects requests whose title or content is missing or empty.
// Every rule violation maps to the same client-facing message.
func (n *DefaultNoteService) validate(req *contract.NoteRequest) apierror.ErrorResponse {
	if req == nil {
		return apierror.MissingFieldsError
	}

	if err := n.Validate.Struct(req); err != nil {
		log.Debugf("rejected note request: %v", err)
		return apierror.MissingFieldsError
	}
	return nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
	}
}
