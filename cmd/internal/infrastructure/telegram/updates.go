package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"excelbot/cmd/internal/contract"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/gommon/log"
)

const pollTimeoutSeconds = 60

// SetWebhook makes Telegram push updates to url. A non-empty secret is sent
// back by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (b *BotClient) SetWebhook(url, secret string) error {
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secret)

	if _, err := b.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("telegram: unable to set webhook: %w", err)
	}
	return nil
}

// Poll long-polls for updates until ctx is done, handing each one to handle.
// Any webhook still registered is removed first, Telegram refuses
// getUpdates while one is set.
func (b *BotClient) Poll(ctx context.Context, handle func(contract.Update)) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return err
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if converted, ok := ToUpdate(&upd); ok {
				handle(converted)
			}
		}
	}
}

// ParseWebhook decodes a pushed update. ok is false for update kinds the
// bot does not handle (edits, channel posts, ...).
func (b *BotClient) ParseWebhook(r *http.Request) (contract.Update, bool, error) {
	upd, err := b.api.HandleUpdate(r)
	if err != nil {
		return contract.Update{}, false, err
	}

	converted, ok := ToUpdate(upd)
	return converted, ok, nil
}

// ToUpdate converts a Bot API update into the bot's own representation.
func ToUpdate(upd *tgbotapi.Update) (contract.Update, bool) {
	switch {
	case upd.CallbackQuery != nil:
		return fromCallback(upd.CallbackQuery)
	case upd.Message != nil:
		return fromMessage(upd.Message)
	}
	return contract.Update{}, false
}

func fromCallback(q *tgbotapi.CallbackQuery) (contract.Update, bool) {
	if q.From == nil || q.Message == nil || q.Message.Chat == nil {
		log.Debugf("ignoring callback %s without an originating message", q.ID)
		return contract.Update{}, false
	}

	return contract.Update{
		ChatID:       q.Message.Chat.ID,
		MessageID:    q.Message.MessageID,
		From:         toSender(q.From),
		CallbackID:   q.ID,
		CallbackData: q.Data,
	}, true
}

func fromMessage(m *tgbotapi.Message) (contract.Update, bool) {
	if m.From == nil || m.Chat == nil {
		return contract.Update{}, false
	}

	upd := contract.Update{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		From:      toSender(m.From),
		Text:      m.Text,
	}

	if m.IsCommand() {
		upd.Command = m.Command()
		upd.Args = strings.Fields(m.CommandArguments())
	}

	switch {
	case m.Document != nil:
		upd.File = &contract.File{
			Kind:     contract.FileDocument,
			ID:       m.Document.FileID,
			UniqueID: m.Document.FileUniqueID,
			Name:     m.Document.FileName,
		}
	case len(m.Photo) > 0:
		// Sizes are ordered smallest first.
		largest := m.Photo[len(m.Photo)-1]
		upd.File = &contract.File{
			Kind:     contract.FilePhoto,
			ID:       largest.FileID,
			UniqueID: largest.FileUniqueID,
		}
	}
	return upd, true
}

func toSender(u *tgbotapi.User) contract.Sender {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return contract.Sender{ID: u.ID, DisplayName: name}
}
