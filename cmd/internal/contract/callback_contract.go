package contract

import (
	"strconv"
	"strings"
)

const (
	CallbackSubjectPrefix  = "sub_"
	CallbackNotePrefix     = "note_"
	CallbackDeletePrefix   = "del_"
	CallbackBackToSubjects = "back_to_subjects"
)

type CallbackAction int

const (
	ActionUnknown CallbackAction = iota
	ActionListSubject
	ActionSendNote
	ActionBackToSubjects
	ActionDeleteNote
)

// Callback is decoded button data. Arg holds the subject name or the raw
// note ID, depending on the action.
type Callback struct {
	Action CallbackAction
	Arg    string
}

func ParseCallback(data string) Callback {
	switch {
	case data == CallbackBackToSubjects:
		return Callback{Action: ActionBackToSubjects}
	case strings.HasPrefix(data, CallbackSubjectPrefix):
		return Callback{Action: ActionListSubject, Arg: strings.TrimPrefix(data, CallbackSubjectPrefix)}
	case strings.HasPrefix(data, CallbackNotePrefix):
		return Callback{Action: ActionSendNote, Arg: strings.TrimPrefix(data, CallbackNotePrefix)}
	case strings.HasPrefix(data, CallbackDeletePrefix):
		return Callback{Action: ActionDeleteNote, Arg: strings.TrimPrefix(data, CallbackDeletePrefix)}
	}
	return Callback{Action: ActionUnknown, Arg: data}
}

func SubjectData(subject string) string {
	return CallbackSubjectPrefix + subject
}

func NoteData(noteID int64) string {
	return CallbackNotePrefix + strconv.FormatInt(noteID, 10)
}

func DeleteData(noteID int64) string {
	return CallbackDeletePrefix + strconv.FormatInt(noteID, 10)
}
