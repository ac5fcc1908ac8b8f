package contract

// SearchLimit caps the number of notes a /search answers with.
const SearchLimit = 10

// UploadRequest is what a finished upload dialogue hands to the store.
type UploadRequest struct {
	FileRef       string `validate:"required"`
	FileUniqueRef string `validate:"required"`
	FileName      string
	Title         string `validate:"required"`
	Subject       string `validate:"required,subject"`
}
