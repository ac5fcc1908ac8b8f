package telegram

import (
	"testing"

	"excelbot/cmd/internal/contract"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
)

func TestToUpdate_Command(t *testing.T) {
	upd := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 5,
			From:      &tgbotapi.User{ID: 42, FirstName: "Ada", LastName: "Lovelace"},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      "/search@ExcelBot cell   structure",
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 16}},
		},
	}

	got, ok := ToUpdate(upd)
	if !ok {
		t.Fatal("expected update to be handled")
	}

	want := contract.Update{
		ChatID:    42,
		MessageID: 5,
		From:      contract.Sender{ID: 42, DisplayName: "Ada Lovelace"},
		Command:   "search",
		Args:      []string{"cell", "structure"},
		Text:      "/search@ExcelBot cell   structure",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}
}

func TestToUpdate_Photo(t *testing.T) {
	upd := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 1, FirstName: "Bo"},
			Chat: &tgbotapi.Chat{ID: 1},
			Photo: []tgbotapi.PhotoSize{
				{FileID: "small", FileUniqueID: "s"},
				{FileID: "large", FileUniqueID: "l"},
			},
		},
	}

	got, ok := ToUpdate(upd)
	if !ok {
		t.Fatal("expected update to be handled")
	}

	want := &contract.File{Kind: contract.FilePhoto, ID: "large", UniqueID: "l"}
	if diff := cmp.Diff(want, got.File); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
	if got.From.DisplayName != "Bo" {
		t.Errorf("expected display name without trailing space, got %q", got.From.DisplayName)
	}
}

func TestToUpdate_Document(t *testing.T) {
	upd := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: 1, FirstName: "Bo"},
			Chat:     &tgbotapi.Chat{ID: 1},
			Document: &tgbotapi.Document{FileID: "doc", FileUniqueID: "d", FileName: "cells.pdf"},
		},
	}

	got, _ := ToUpdate(upd)
	want := &contract.File{Kind: contract.FileDocument, ID: "doc", UniqueID: "d", Name: "cells.pdf"}
	if diff := cmp.Diff(want, got.File); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestToUpdate_Callback(t *testing.T) {
	upd := &tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb1",
			From:    &tgbotapi.User{ID: 9, FirstName: "Cy"},
			Message: &tgbotapi.Message{MessageID: 77, Chat: &tgbotapi.Chat{ID: 9}},
			Data:    "note_3",
		},
	}

	got, ok := ToUpdate(upd)
	if !ok {
		t.Fatal("expected callback to be handled")
	}
	if !got.IsCallback() || got.CallbackData != "note_3" || got.MessageID != 77 || got.ChatID != 9 {
		t.Errorf("unexpected callback update: %+v", got)
	}
}

func TestToUpdate_Ignored(t *testing.T) {
	if _, ok := ToUpdate(&tgbotapi.Update{}); ok {
		t.Error("expected empty update to be ignored")
	}
	if _, ok := ToUpdate(&tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "x"}}); ok {
		t.Error("expected callback without message to be ignored")
	}
}
