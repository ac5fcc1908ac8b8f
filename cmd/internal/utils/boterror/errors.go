package boterror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts every error the bot reports back to a user.
//
// This interface does not implement `error`, since its only purpose
// is to be rendered as a chat message and not for logging circumstances.
type ErrorResponse interface {
	// Reply is the text sent back to the user.
	Reply() string

	// IsHTML tells whether Reply must be parsed as Telegram HTML.
	IsHTML() bool
}

type BotError struct {
	Message string
	HTML    bool
}

func (b *BotError) Reply() string {
	return b.Message
}

func (b *BotError) IsHTML() bool {
	return b.HTML
}

var (
	InternalError = NewSimple("Something went wrong on our side, please try again later.")

	NoteNotFoundError   = NewSimple("Sorry, note not found.")
	InvalidNoteIDError  = NewSimple("Invalid Note ID.")
	DeleteRejectedError = NewSimple("❌ Could not delete the note. You might not be the owner.")
	FileGoneError       = NewSimple("Could not send the file. It might have been deleted from Telegram servers.")

	/*
	 * Upload dialogue
	 */
	ExpectedFileError    = NewSimple("Please send a valid document or image.")
	ExpectedTitleError   = NewSimple("Please enter a title for this note as a text message.")
	InvalidSubjectError  = NewSimple("Please select a subject from the provided keyboard buttons.")
	NoUploadRunningError = NewSimple("There is no upload in progress. Use /upload to share a note.")

	/*
	 * Command arguments
	 */
	MissingKeywordError   = NewHTML("Please provide a keyword to search for. Example: <code>/search cell</code>")
	MissingBroadcastError = NewSimple("Please provide a message to broadcast.")
	DeleteNoteUsageError  = NewSimple("Usage: /delete_note <note_id>")
)

// FromValidationError turns the first failed rule of a validator error into
// a corrective message. It returns nil when err is not a validation error.
func FromValidationError(err error) *BotError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return nil
	}

	fe := ve[0]
	switch fe.Tag() {
	case "subject":
		return InvalidSubjectError
	case "required":
		switch fe.Field() {
		case "Title":
			return ExpectedTitleError
		case "FileRef", "FileUniqueRef":
			return ExpectedFileError
		case "Subject":
			return InvalidSubjectError
		}
		return NewSimple("Missing value for %s.", fe.Field())
	default:
		return NewSimple("Invalid value provided for %s.", fe.Field())
	}
}

func NewSimple(msg string, args ...any) *BotError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &BotError{Message: msg}
}

func NewHTML(msg string, args ...any) *BotError {
	e := NewSimple(msg, args...)
	e.HTML = true
	return e
}

func NewNoSearchResultsError(keyword string) *BotError {
	return NewSimple("No results found for '%s'.", keyword)
}

func NewNoSubjectNotesError(subject string) *BotError {
	return NewSimple("No notes found for %s.", subject)
}

func NewForceDeleteMissError(noteID int64) *BotError {
	return NewSimple("❌ Note %d not found.", noteID)
}
