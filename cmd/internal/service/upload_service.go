package service

import (
	"context"
	"math/rand"

	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/utils"
	"excelbot/cmd/internal/utils/boterror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const defaultFileName = "note"

// SessionStore holds the scratch data of in-progress uploads, one per user.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*entity.UploadSession, error)
	Put(ctx context.Context, userID int64, s *entity.UploadSession) error
	Delete(ctx context.Context, userID int64) error
}

type NoteWriter interface {
	Save(note *entity.Note) error
}

// DefaultUploadService drives the /upload dialogue:
// file -> title -> subject, then the note is stored.
type DefaultUploadService struct {
	NoteRepo NoteWriter
	Sessions SessionStore
	Validate *validator.Validate

	// Pick chooses the confirmation message, Now stamps notes (epoch millis).
	Pick func(n int) int
	Now  func() int64
}

func NewUploadService(noteRepo NoteWriter, sessions SessionStore, validate *validator.Validate) *DefaultUploadService {
	return &DefaultUploadService{
		NoteRepo: noteRepo,
		Sessions: sessions,
		Validate: validate,
		Pick:     rand.Intn,
		Now:      utils.NowUTC,
	}
}

func (s *DefaultUploadService) InProgress(ctx context.Context, userID int64) (bool, error) {
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

// Start (re)starts the dialogue, discarding anything collected so far.
func (s *DefaultUploadService) Start(ctx context.Context, actor *entity.User) (*contract.Reply, boterror.ErrorResponse) {
	sess := &entity.UploadSession{
		State:     entity.StateAwaitingFile,
		UpdatedAt: s.Now(),
	}

	if err := s.Sessions.Put(ctx, actor.ID, sess); err != nil {
		log.Errorf("failed to start upload session for user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	reply := contract.Text(askFileText)
	reply.RemoveKeyboard = true
	return reply, nil
}

// Continue feeds a non-command message into the user's dialogue. It returns
// nil, nil when the user has no dialogue in progress.
func (s *DefaultUploadService) Continue(ctx context.Context, actor *entity.User, upd *contract.Update) (*contract.Reply, boterror.ErrorResponse) {
	sess, err := s.Sessions.Get(ctx, actor.ID)
	if err != nil {
		log.Errorf("failed to load upload session for user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	if sess == nil {
		return nil, nil
	}

	switch sess.State {
	case entity.StateAwaitingFile:
		return s.receiveFile(ctx, actor, sess, upd.File)
	case entity.StateAwaitingTitle:
		return s.receiveTitle(ctx, actor, sess, upd)
	case entity.StateAwaitingSubject:
		return s.receiveSubject(ctx, actor, sess, upd.Text)
	}

	log.Warnf("dropping upload session of user %d in unknown state %q", actor.ID, sess.State)
	s.clear(ctx, actor.ID)
	return nil, boterror.NoUploadRunningError
}

func (s *DefaultUploadService) Cancel(ctx context.Context, actor *entity.User) (*contract.Reply, boterror.ErrorResponse) {
	sess, err := s.Sessions.Get(ctx, actor.ID)
	if err != nil {
		log.Errorf("failed to load upload session for user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	if sess == nil {
		return nil, boterror.NoUploadRunningError
	}

	if err := s.Sessions.Delete(ctx, actor.ID); err != nil {
		log.Errorf("failed to cancel upload session for user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	reply := contract.Text(uploadCancelText)
	reply.RemoveKeyboard = true
	return reply, nil
}

func (s *DefaultUploadService) receiveFile(ctx context.Context, actor *entity.User, sess *entity.UploadSession, file *contract.File) (*contract.Reply, boterror.ErrorResponse) {
	if file == nil {
		return nil, boterror.ExpectedFileError
	}

	sess.FileRef = file.ID
	sess.FileUniqueRef = file.UniqueID
	sess.FileName = fileName(file)
	sess.State = entity.StateAwaitingTitle
	return s.advance(ctx, actor, sess, contract.Text(askTitleText))
}

func (s *DefaultUploadService) receiveTitle(ctx context.Context, actor *entity.User, sess *entity.UploadSession, upd *contract.Update) (*contract.Reply, boterror.ErrorResponse) {
	if upd.Text == "" {
		return nil, boterror.ExpectedTitleError
	}

	// Titles are kept exactly as typed.
	sess.Title = upd.Text
	sess.State = entity.StateAwaitingSubject

	reply := contract.Text(askSubjectText)
	for _, sub := range subjectNames() {
		reply.Keyboard = append(reply.Keyboard, []string{sub})
	}
	return s.advance(ctx, actor, sess, reply)
}

func (s *DefaultUploadService) receiveSubject(ctx context.Context, actor *entity.User, sess *entity.UploadSession, subject string) (*contract.Reply, boterror.ErrorResponse) {
	req := &contract.UploadRequest{
		FileRef:       sess.FileRef,
		FileUniqueRef: sess.FileUniqueRef,
		FileName:      sess.FileName,
		Title:         sess.Title,
		Subject:       subject,
	}

	if err := s.Validate.Struct(req); err != nil {
		if verr := boterror.FromValidationError(err); verr != nil {
			return nil, verr
		}
		log.Errorf("failed to validate upload of user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	note := &entity.Note{
		FileRef:          req.FileRef,
		FileUniqueRef:    req.FileUniqueRef,
		FileName:         req.FileName,
		Title:            req.Title,
		Subject:          entity.Subject(req.Subject),
		OwnerID:          actor.ID,
		OwnerDisplayName: actor.DisplayName,
		UploadedAt:       s.Now(),
	}

	if err := s.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note of user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}

	log.Infof("user %d shared note %d (%s)", actor.ID, note.ID, note.Subject)
	s.clear(ctx, actor.ID)

	pool := thankYouMessages(req.Subject)
	reply := contract.Text(pool[s.Pick(len(pool))])
	reply.RemoveKeyboard = true
	return reply, nil
}

func (s *DefaultUploadService) advance(ctx context.Context, actor *entity.User, sess *entity.UploadSession, reply *contract.Reply) (*contract.Reply, boterror.ErrorResponse) {
	sess.UpdatedAt = s.Now()
	if err := s.Sessions.Put(ctx, actor.ID, sess); err != nil {
		log.Errorf("failed to save upload session for user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}
	return reply, nil
}

// clear drops the scratch data. The note (if any) is already stored, so a
// failure here is only logged.
func (s *DefaultUploadService) clear(ctx context.Context, userID int64) {
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		log.Errorf("failed to clear upload session for user %d: %v", userID, err)
	}
}

// fileName keeps a document's own name. Photos have none, so one is
// derived from the file's unique ID.
func fileName(file *contract.File) string {
	if file.Kind == contract.FilePhoto {
		return "photo_" + file.UniqueID + ".jpg"
	}
	if file.Name == "" {
		return defaultFileName
	}
	return file.Name
}

func subjectNames() []string {
	names := make([]string, len(entity.Subjects))
	for i, sub := range entity.Subjects {
		names[i] = string(sub)
	}
	return names
}
