package entity

type UploadState string

const (
	StateAwaitingFile    UploadState = "AWAITING_FILE"
	StateAwaitingTitle   UploadState = "AWAITING_TITLE"
	StateAwaitingSubject UploadState = "AWAITING_SUBJECT"
)

// UploadSession is the scratch data of a single /upload dialogue.
// It only lives until the dialogue completes or is cancelled.
type UploadSession struct {
	State         UploadState `json:"state"`
	FileRef       string      `json:"file_ref,omitempty"`
	FileUniqueRef string      `json:"file_unique_ref,omitempty"`
	FileName      string      `json:"file_name,omitempty"`
	Title         string      `json:"title,omitempty"`
	UpdatedAt     int64       `json:"updated_at"`
}
