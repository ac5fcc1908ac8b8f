package policy

import (
	"excelbot/cmd/internal/domain/entity"
)

// NotePolicy encapsulates the only privilege the bot knows about: being
// the configured administrator.
type NotePolicy struct {
	adminID    int64
	hasAdminID bool
}

// NewNotePolicy builds a policy for the given admin. When ok is false
// nobody is treated as admin.
func NewNotePolicy(adminID int64, ok bool) *NotePolicy {
	return &NotePolicy{adminID: adminID, hasAdminID: ok}
}

func (p *NotePolicy) IsAdmin(actor *entity.User) bool {
	if actor == nil || !p.hasAdminID {
		return false
	}
	return actor.ID == p.adminID
}

// CanForceDelete tells whether actor may delete notes it does not own.
func (p *NotePolicy) CanForceDelete(actor *entity.User) bool {
	return p.IsAdmin(actor)
}
