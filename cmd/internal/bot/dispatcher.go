package bot

import (
	"context"

	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/infrastructure/telegram"
	"excelbot/cmd/internal/utils/boterror"

	"github.com/labstack/gommon/log"
)

type UserService interface {
	Welcome(actor *entity.User) (*contract.Reply, boterror.ErrorResponse)
	Help() *contract.Reply
}

type UploadService interface {
	InProgress(ctx context.Context, userID int64) (bool, error)
	Start(ctx context.Context, actor *entity.User) (*contract.Reply, boterror.ErrorResponse)
	Continue(ctx context.Context, actor *entity.User, upd *contract.Update) (*contract.Reply, boterror.ErrorResponse)
	Cancel(ctx context.Context, actor *entity.User) (*contract.Reply, boterror.ErrorResponse)
}

type NoteService interface {
	SubjectMenu() *contract.Reply
	ListSubject(subject string) (*contract.Reply, boterror.ErrorResponse)
	Search(keyword string) (*contract.Reply, boterror.ErrorResponse)
	ListOwned(actor *entity.User) (*contract.Reply, boterror.ErrorResponse)
	Deliver(ctx context.Context, chatID int64, rawID string) boterror.ErrorResponse
	Delete(actor *entity.User, rawID string) (*contract.Reply, boterror.ErrorResponse)
}

type AdminService interface {
	Dashboard(actor *entity.User) (*contract.Reply, boterror.ErrorResponse)
	Broadcast(ctx context.Context, actor *entity.User, chatID int64, message string) (*contract.Reply, boterror.ErrorResponse)
	ForceDelete(actor *entity.User, args []string) (*contract.Reply, boterror.ErrorResponse)
}

// Dispatcher routes every update to the service that owns it and sends
// the outcome back to the chat it came from.
type Dispatcher struct {
	Users     UserService
	Uploads   UploadService
	Notes     NoteService
	Admin     AdminService
	Messenger telegram.Messenger
}

func NewDispatcher(
	users UserService,
	uploads UploadService,
	notes NoteService,
	admin AdminService,
	messenger telegram.Messenger,
) *Dispatcher {
	return &Dispatcher{
		Users:     users,
		Uploads:   uploads,
		Notes:     notes,
		Admin:     admin,
		Messenger: messenger,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, upd contract.Update) {
	actor := &entity.User{ID: upd.From.ID, DisplayName: upd.From.DisplayName}

	switch {
	case upd.IsCallback():
		d.handleCallback(ctx, actor, &upd)
	case upd.Command != "":
		d.handleCommand(ctx, actor, &upd)
	default:
		d.handleMessage(ctx, actor, &upd)
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, actor *entity.User, upd *contract.Update) {
	var (
		reply *contract.Reply
		err   boterror.ErrorResponse
	)

	switch upd.Command {
	case "start":
		reply, err = d.Users.Welcome(actor)
	case "help":
		reply = d.Users.Help()
	case "upload":
		reply, err = d.Uploads.Start(ctx, actor)
	case "cancel":
		reply, err = d.Uploads.Cancel(ctx, actor)
	case "browse":
		reply = d.Notes.SubjectMenu()
	case "search":
		reply, err = d.Notes.Search(upd.ArgString())
	case "my_notes":
		reply, err = d.Notes.ListOwned(actor)
	case "admin":
		reply, err = d.Admin.Dashboard(actor)
	case "broadcast":
		reply, err = d.Admin.Broadcast(ctx, actor, upd.ChatID, upd.ArgString())
	case "delete_note":
		reply, err = d.Admin.ForceDelete(actor, upd.Args)
	default:
		log.Debugf("ignoring unknown command /%s from user %d", upd.Command, actor.ID)
		return
	}

	d.send(ctx, upd.ChatID, reply, err)
}

// handleMessage feeds plain messages to a running upload. Without one they
// are ignored.
func (d *Dispatcher) handleMessage(ctx context.Context, actor *entity.User, upd *contract.Update) {
	active, err := d.Uploads.InProgress(ctx, actor.ID)
	if err != nil {
		log.Errorf("failed to check upload session of user %d: %v", actor.ID, err)
		d.send(ctx, upd.ChatID, nil, boterror.InternalError)
		return
	}

	if !active {
		return
	}

	reply, rerr := d.Uploads.Continue(ctx, actor, upd)
	d.send(ctx, upd.ChatID, reply, rerr)
}

func (d *Dispatcher) handleCallback(ctx context.Context, actor *entity.User, upd *contract.Update) {
	// Telegram keeps the button spinning until the query is answered.
	if err := d.Messenger.AnswerCallback(ctx, upd.CallbackID); err != nil {
		log.Warnf("failed to answer callback %s: %v", upd.CallbackID, err)
	}

	var (
		reply *contract.Reply
		err   boterror.ErrorResponse
	)

	cb := contract.ParseCallback(upd.CallbackData)
	switch cb.Action {
	case contract.ActionListSubject:
		reply, err = d.Notes.ListSubject(cb.Arg)
	case contract.ActionBackToSubjects:
		reply = d.Notes.SubjectMenu()
	case contract.ActionSendNote:
		err = d.Notes.Deliver(ctx, upd.ChatID, cb.Arg)
	case contract.ActionDeleteNote:
		reply, err = d.Notes.Delete(actor, cb.Arg)
	default:
		log.Debugf("ignoring unknown callback %q from user %d", upd.CallbackData, actor.ID)
		return
	}

	d.edit(ctx, upd.ChatID, upd.MessageID, reply, err)
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, reply *contract.Reply, err boterror.ErrorResponse) {
	if err != nil {
		reply = fromError(err)
	}

	if reply == nil {
		return
	}

	if serr := d.Messenger.Send(ctx, chatID, reply); serr != nil {
		log.Warnf("failed to send message to chat %d: %v", chatID, serr)
	}
}

func (d *Dispatcher) edit(ctx context.Context, chatID int64, messageID int, reply *contract.Reply, err boterror.ErrorResponse) {
	if err != nil {
		reply = fromError(err)
	}

	if reply == nil {
		return
	}

	if eerr := d.Messenger.Edit(ctx, chatID, messageID, reply); eerr != nil {
		log.Warnf("failed to edit message %d in chat %d: %v", messageID, chatID, eerr)
	}
}

func fromError(err boterror.ErrorResponse) *contract.Reply {
	return &contract.Reply{Text: err.Reply(), HTML: err.IsHTML()}
}
