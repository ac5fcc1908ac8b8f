package service

import (
	"context"
	"strings"
	"testing"

	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/domain/policy"
	"excelbot/cmd/internal/utils/boterror"
)

func newTestAdminService(userIDs ...int64) (*DefaultAdminService, *mockNoteRepo, *mockMessenger) {
	notes := newMockNoteRepo()
	messenger := newMockMessenger()
	svc := NewAdminService(newMockUserRepo(userIDs...), notes, messenger, policy.NewNotePolicy(adminID, true))
	return svc, notes, messenger
}

func TestAdminService_Dashboard(t *testing.T) {
	svc, notes, _ := newTestAdminService(1, 2, 3)
	seedNote(notes, "Cells", entity.SubjectBiology, 1, 100)

	reply, err := svc.Dashboard(admin)
	if err != nil {
		t.Fatalf("expected no error, got %v", err.Reply())
	}
	if !strings.Contains(reply.Text, "Total Users: 3") || !strings.Contains(reply.Text, "Total Notes: 1") {
		t.Errorf("unexpected dashboard %q", reply.Text)
	}
}

func TestAdminService_IgnoresNonAdmin(t *testing.T) {
	svc, notes, messenger := newTestAdminService(1, 2)
	seedNote(notes, "Cells", entity.SubjectBiology, 1, 100)
	ctx := context.Background()

	if reply, err := svc.Dashboard(stranger); reply != nil || err != nil {
		t.Errorf("dashboard: expected silence, got reply=%v err=%v", reply, err)
	}
	if reply, err := svc.Broadcast(ctx, stranger, stranger.ID, "hi"); reply != nil || err != nil {
		t.Errorf("broadcast: expected silence, got reply=%v err=%v", reply, err)
	}
	if reply, err := svc.ForceDelete(stranger, []string{"1"}); reply != nil || err != nil {
		t.Errorf("delete_note: expected silence, got reply=%v err=%v", reply, err)
	}

	if len(messenger.sent) != 0 {
		t.Errorf("expected nothing sent, got %+v", messenger.sent)
	}
	if count, _ := notes.Count(); count != 1 {
		t.Error("expected note to survive")
	}
}

func TestAdminService_IgnoresEveryoneWithoutAdmin(t *testing.T) {
	svc := NewAdminService(newMockUserRepo(0), newMockNoteRepo(), newMockMessenger(), policy.NewNotePolicy(0, false))

	if reply, err := svc.Dashboard(&entity.User{ID: 0}); reply != nil || err != nil {
		t.Errorf("expected silence, got reply=%v err=%v", reply, err)
	}
}

func TestAdminService_BroadcastSkipsUnreachable(t *testing.T) {
	svc, _, messenger := newTestAdminService(1, 2, 3)
	messenger.unreachable[2] = true

	reply, err := svc.Broadcast(context.Background(), admin, admin.ID, "Exams <moved> to Monday")
	if err != nil {
		t.Fatalf("expected no error, got %v", err.Reply())
	}
	if reply.Text != "✅ Broadcast complete. Sent to 2/3 users." {
		t.Errorf("unexpected summary %q", reply.Text)
	}

	// Admin notice, then users 1 and 3.
	if len(messenger.sent) != 3 {
		t.Fatalf("expected 3 messages, got %+v", messenger.sent)
	}
	if messenger.sent[0].ChatID != admin.ID || messenger.sent[0].Text != "📢 Starting broadcast to 3 users..." {
		t.Errorf("unexpected start notice %+v", messenger.sent[0])
	}
	want := announcementTitle + "Exams &lt;moved&gt; to Monday"
	for _, m := range messenger.sent[1:] {
		if m.Text != want {
			t.Errorf("unexpected announcement %q", m.Text)
		}
	}
}

func TestAdminService_BroadcastRequiresMessage(t *testing.T) {
	svc, _, _ := newTestAdminService(1)

	if _, err := svc.Broadcast(context.Background(), admin, admin.ID, ""); err != boterror.MissingBroadcastError {
		t.Errorf("expected missing message error, got %v", err)
	}
}

func TestAdminService_ForceDelete(t *testing.T) {
	svc, notes, _ := newTestAdminService()
	note := seedNote(notes, "Cells", entity.SubjectBiology, 1, 100)

	reply, err := svc.ForceDelete(admin, []string{"1"})
	if err != nil || reply.Text != "✅ Note 1 deleted." {
		t.Fatalf("unexpected reply=%v err=%v", reply, err)
	}
	if found, _ := notes.FindByID(note.ID); found != nil {
		t.Error("expected note to be gone")
	}

	_, err = svc.ForceDelete(admin, []string{"1"})
	if err == nil || err.Reply() != "❌ Note 1 not found." {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := svc.ForceDelete(admin, nil); err != boterror.DeleteNoteUsageError {
		t.Errorf("expected usage error, got %v", err)
	}
	if _, err := svc.ForceDelete(admin, []string{"x1"}); err != boterror.InvalidNoteIDError {
		t.Errorf("expected invalid id error, got %v", err)
	}
}
