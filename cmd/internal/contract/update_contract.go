package contract

import "strings"

type FileKind int

const (
	FileDocument FileKind = iota
	FilePhoto
)

// File references an attachment that already lives on Telegram's servers.
type File struct {
	Kind     FileKind
	ID       string
	UniqueID string
	Name     string // empty for photos
}

type Sender struct {
	ID          int64
	DisplayName string
}

// Update is a single inbound event, either a message or a button press,
// stripped of everything the handlers do not need.
type Update struct {
	ChatID    int64
	MessageID int
	From      Sender

	// Command is set for "/cmd args" messages, without the slash or @bot suffix.
	Command string
	Args    []string
	Text    string
	File    *File

	CallbackID   string
	CallbackData string
}

func (u *Update) IsCallback() bool {
	return u.CallbackID != ""
}

// ArgString joins the command arguments with single spaces.
func (u *Update) ArgString() string {
	return strings.Join(u.Args, " ")
}
