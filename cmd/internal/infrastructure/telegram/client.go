package telegram

import (
	"context"
	"fmt"

	"excelbot/cmd/internal/contract"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/gommon/log"
)

// Messenger is everything the handlers need from the chat platform.
type Messenger interface {
	Send(ctx context.Context, chatID int64, reply *contract.Reply) error
	Edit(ctx context.Context, chatID int64, messageID int, reply *contract.Reply) error
	SendDocument(ctx context.Context, chatID int64, fileRef, caption string) error
	SendPhoto(ctx context.Context, chatID int64, fileRef, caption string) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

type BotClient struct {
	api *tgbotapi.BotAPI
}

func NewBotClient(token string) (*BotClient, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: unable to authorize bot: %w", err)
	}

	log.Infof("authorized on account %s", api.Self.UserName)
	return &BotClient{api: api}, nil
}

func (b *BotClient) Username() string {
	return b.api.Self.UserName
}

func (b *BotClient) Send(ctx context.Context, chatID int64, reply *contract.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	switch {
	case len(reply.Buttons) > 0:
		msg.ReplyMarkup = inlineKeyboard(reply.Buttons)
	case len(reply.Keyboard) > 0:
		msg.ReplyMarkup = replyKeyboard(reply.Keyboard)
	case reply.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}

	_, err := b.api.Send(msg)
	return err
}

// Edit replaces the text (and inline buttons) of a message the bot sent.
// Reply keyboards cannot be attached to edits and are ignored.
func (b *BotClient) Edit(ctx context.Context, chatID int64, messageID int, reply *contract.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	if reply.HTML {
		edit.ParseMode = tgbotapi.ModeHTML
	}
	if len(reply.Buttons) > 0 {
		markup := inlineKeyboard(reply.Buttons)
		edit.ReplyMarkup = &markup
	}

	_, err := b.api.Send(edit)
	return err
}

func (b *BotClient) SendDocument(ctx context.Context, chatID int64, fileRef, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileRef))
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return err
}

func (b *BotClient) SendPhoto(ctx context.Context, chatID int64, fileRef, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileRef))
	photo.Caption = caption
	_, err := b.api.Send(photo)
	return err
}

func (b *BotClient) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func inlineKeyboard(rows [][]contract.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, text := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(text))
		}
		keyboard = append(keyboard, tgbotapi.NewKeyboardButtonRow(buttons...))
	}

	markup := tgbotapi.NewReplyKeyboard(keyboard...)
	markup.OneTimeKeyboard = true
	markup.ResizeKeyboard = true
	return markup
}
