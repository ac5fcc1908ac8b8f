package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/domain/policy"
	"excelbot/cmd/internal/infrastructure/telegram"
	"excelbot/cmd/internal/utils"
	"excelbot/cmd/internal/utils/boterror"

	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	Save(note *entity.Note) error
	Count() (int64, error)
	FindByID(id int64) (*entity.Note, error)
	FindBySubject(subject entity.Subject) ([]*entity.Note, error)
	FindByOwner(ownerID int64) ([]*entity.Note, error)
	Search(keyword string, limit int) ([]*entity.Note, error)
	DeleteOwned(id, ownerID int64) (bool, error)
	Delete(id int64) (bool, error)
}

type DefaultNoteService struct {
	NoteRepo  NoteRepository
	Messenger telegram.Messenger
	Policy    *policy.NotePolicy
}

func NewNoteService(noteRepo NoteRepository, messenger telegram.Messenger, notePolicy *policy.NotePolicy) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:  noteRepo,
		Messenger: messenger,
		Policy:    notePolicy,
	}
}

func (n *DefaultNoteService) SubjectMenu() *contract.Reply {
	return subjectMenu(browsePromptText)
}

func (n *DefaultNoteService) ListSubject(subject string) (*contract.Reply, boterror.ErrorResponse) {
	notes, err := n.NoteRepo.FindBySubject(entity.Subject(subject))
	if err != nil {
		log.Errorf("failed to fetch notes for %s: %v", subject, err)
		return nil, boterror.InternalError
	}

	if len(notes) == 0 {
		return nil, boterror.NewNoSubjectNotesError(subject)
	}

	reply := contract.Text(fmt.Sprintf("Notes for %s:", subject))
	for _, note := range notes {
		reply.Buttons = append(reply.Buttons, []contract.Button{{
			Text: fmt.Sprintf("📄 %s (%s)", note.Title, note.FileName),
			Data: contract.NoteData(note.ID),
		}})
	}
	reply.Buttons = append(reply.Buttons, []contract.Button{{Text: backButtonText, Data: contract.CallbackBackToSubjects}})
	return reply, nil
}

func (n *DefaultNoteService) Search(keyword string) (*contract.Reply, boterror.ErrorResponse) {
	if keyword == "" {
		return nil, boterror.MissingKeywordError
	}

	notes, err := n.NoteRepo.Search(keyword, contract.SearchLimit)
	if err != nil {
		log.Errorf("failed to search notes for %q: %v", keyword, err)
		return nil, boterror.InternalError
	}

	if len(notes) == 0 {
		return nil, boterror.NewNoSearchResultsError(keyword)
	}

	reply := contract.Text(fmt.Sprintf("Search results for '%s':", keyword))
	for _, note := range notes {
		reply.Buttons = append(reply.Buttons, []contract.Button{{
			Text: fmt.Sprintf("📄 %s (%s)", note.Title, note.Subject),
			Data: contract.NoteData(note.ID),
		}})
	}
	return reply, nil
}

func (n *DefaultNoteService) ListOwned(actor *entity.User) (*contract.Reply, boterror.ErrorResponse) {
	notes, err := n.NoteRepo.FindByOwner(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch notes of user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	if len(notes) == 0 {
		return contract.Text(noOwnNotesText), nil
	}

	var text strings.Builder
	text.WriteString(ownNotesHeader)

	reply := &contract.Reply{HTML: true}
	for _, note := range notes {
		fmt.Fprintf(&text, "• %s (%s)\n", html.EscapeString(note.Title), html.EscapeString(string(note.Subject)))
		reply.Buttons = append(reply.Buttons, []contract.Button{{
			Text: fmt.Sprintf("🗑 Delete '%s'", note.Title),
			Data: contract.DeleteData(note.ID),
		}})
	}
	reply.Text = text.String()
	return reply, nil
}

// Deliver sends the note's file to chatID. Files uploaded as photos cannot
// be re-sent as documents, so a failed document send is retried once as a
// photo. Errors are returned only when nothing could be attempted; a file
// that is gone upstream is reported to the chat directly.
func (n *DefaultNoteService) Deliver(ctx context.Context, chatID int64, rawID string) boterror.ErrorResponse {
	noteID, ok := utils.ParseID(rawID)
	if !ok {
		return boterror.InvalidNoteIDError
	}

	note, err := n.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return boterror.InternalError
	}

	if note == nil {
		return boterror.NoteNotFoundError
	}

	subject := string(note.Subject)
	sending := contract.Text(fmt.Sprintf("Sending '%s' (%s)...", note.Title, subject))
	if err := n.Messenger.Send(ctx, chatID, sending); err != nil {
		log.Warnf("failed to announce note %d to chat %d: %v", noteID, chatID, err)
	}

	caption := noteCaption(note.Title, subject)
	err = n.Messenger.SendDocument(ctx, chatID, note.FileRef, caption)
	if err == nil {
		return nil
	}
	log.Errorf("failed to send note %d as document: %v", noteID, err)

	err = n.Messenger.SendPhoto(ctx, chatID, note.FileRef, caption)
	if err == nil {
		return nil
	}
	log.Errorf("failed to send note %d as photo: %v", noteID, err)

	if err := n.Messenger.Send(ctx, chatID, contract.Text(boterror.FileGoneError.Reply())); err != nil {
		log.Warnf("failed to report missing file of note %d to chat %d: %v", noteID, chatID, err)
	}
	return nil
}

// Delete removes one of actor's own notes. When actor is not the owner (or
// the note does not exist) an admin falls back to a force delete.
func (n *DefaultNoteService) Delete(actor *entity.User, rawID string) (*contract.Reply, boterror.ErrorResponse) {
	noteID, ok := utils.ParseID(rawID)
	if !ok {
		return nil, boterror.InvalidNoteIDError
	}

	deleted, err := n.NoteRepo.DeleteOwned(noteID, actor.ID)
	if err != nil {
		log.Errorf("failed to delete note %d: %v", noteID, err)
		return nil, boterror.InternalError
	}

	if deleted {
		return contract.Text(ownerDeletedText), nil
	}

	if !n.Policy.CanForceDelete(actor) {
		return nil, boterror.DeleteRejectedError
	}

	deleted, err = n.NoteRepo.Delete(noteID)
	if err != nil {
		log.Errorf("failed to force delete note %d: %v", noteID, err)
		return nil, boterror.InternalError
	}

	if !deleted {
		return nil, boterror.DeleteRejectedError
	}

	log.Infof("admin %d deleted note %d", actor.ID, noteID)
	return contract.Text(adminDeletedText), nil
}
