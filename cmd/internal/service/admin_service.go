package service

import (
	"context"
	"fmt"
	"html"

	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/domain/policy"
	"excelbot/cmd/internal/infrastructure/telegram"
	"excelbot/cmd/internal/utils"
	"excelbot/cmd/internal/utils/boterror"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type NoteAdminRepository interface {
	Count() (int64, error)
	Delete(id int64) (bool, error)
}

// DefaultAdminService backs the admin-only commands. Every method returns
// nil, nil for anyone but the admin, so the command looks like it does not
// exist.
type DefaultAdminService struct {
	UserRepo  UserRepository
	NoteRepo  NoteAdminRepository
	Messenger telegram.Messenger
	Policy    *policy.NotePolicy
}

func NewAdminService(
	userRepo UserRepository,
	noteRepo NoteAdminRepository,
	messenger telegram.Messenger,
	notePolicy *policy.NotePolicy,
) *DefaultAdminService {
	return &DefaultAdminService{
		UserRepo:  userRepo,
		NoteRepo:  noteRepo,
		Messenger: messenger,
		Policy:    notePolicy,
	}
}

func (a *DefaultAdminService) Dashboard(actor *entity.User) (*contract.Reply, boterror.ErrorResponse) {
	if !a.authorize(actor, "admin") {
		return nil, nil
	}

	users, err := a.UserRepo.Count()
	if err != nil {
		log.Errorf("failed to count users: %v", err)
		return nil, boterror.InternalError
	}

	notes, err := a.NoteRepo.Count()
	if err != nil {
		log.Errorf("failed to count notes: %v", err)
		return nil, boterror.InternalError
	}
	return contract.HTML(adminDashboardText(users, notes)), nil
}

// Broadcast sends message to every registered user, one after another.
// A user that cannot be reached (blocked the bot, deleted account) is
// logged and skipped.
func (a *DefaultAdminService) Broadcast(ctx context.Context, actor *entity.User, chatID int64, message string) (*contract.Reply, boterror.ErrorResponse) {
	if !a.authorize(actor, "broadcast") {
		return nil, nil
	}

	if message == "" {
		return nil, boterror.MissingBroadcastError
	}

	ids, err := a.UserRepo.FindAllIDs()
	if err != nil {
		log.Errorf("failed to fetch users for broadcast: %v", err)
		return nil, boterror.InternalError
	}

	runID := uuid.NewString()
	total := len(ids)
	log.Infof("broadcast %s: starting, %d recipients", runID, total)

	starting := contract.Text(fmt.Sprintf("📢 Starting broadcast to %d users...", total))
	if err := a.Messenger.Send(ctx, chatID, starting); err != nil {
		log.Warnf("broadcast %s: failed to notify admin: %v", runID, err)
	}

	announcement := contract.HTML(announcementTitle + html.EscapeString(message))
	sent := 0
	for _, id := range ids {
		if err := a.Messenger.Send(ctx, id, announcement); err != nil {
			log.Warnf("broadcast %s: failed to send to %d: %v", runID, id, err)
			continue
		}
		sent++
	}

	log.Infof("broadcast %s: done, sent to %d/%d users", runID, sent, total)
	return contract.Text(fmt.Sprintf("✅ Broadcast complete. Sent to %d/%d users.", sent, total)), nil
}

// ForceDelete deletes any note by ID, regardless of its owner.
func (a *DefaultAdminService) ForceDelete(actor *entity.User, args []string) (*contract.Reply, boterror.ErrorResponse) {
	if !a.authorize(actor, "delete_note") {
		return nil, nil
	}

	if len(args) == 0 {
		return nil, boterror.DeleteNoteUsageError
	}

	noteID, ok := utils.ParseID(args[0])
	if !ok {
		return nil, boterror.InvalidNoteIDError
	}

	deleted, err := a.NoteRepo.Delete(noteID)
	if err != nil {
		log.Errorf("failed to force delete note %d: %v", noteID, err)
		return nil, boterror.InternalError
	}

	if !deleted {
		return nil, boterror.NewForceDeleteMissError(noteID)
	}

	log.Infof("admin %d deleted note %d", actor.ID, noteID)
	return contract.Text(fmt.Sprintf("✅ Note %d deleted.", noteID)), nil
}

func (a *DefaultAdminService) authorize(actor *entity.User, command string) bool {
	if a.Policy.IsAdmin(actor) {
		return true
	}

	log.Infof("admin command /%s attempted by user %d", command, actor.ID)
	return false
}
