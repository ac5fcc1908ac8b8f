package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
)

var errUnreachable = errors.New("Forbidden: bot was blocked by the user")

type mockNoteRepo struct {
	notes  map[int64]*entity.Note
	nextID int64
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[int64]*entity.Note)}
}

func (m *mockNoteRepo) Save(note *entity.Note) error {
	m.nextID++
	note.ID = m.nextID
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) Count() (int64, error) {
	return int64(len(m.notes)), nil
}

func (m *mockNoteRepo) FindByID(id int64) (*entity.Note, error) {
	if n, ok := m.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (m *mockNoteRepo) filter(keep func(*entity.Note) bool) []*entity.Note {
	var out []*entity.Note
	for _, n := range m.notes {
		if keep(n) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt > out[j].UploadedAt })
	return out
}

func (m *mockNoteRepo) FindBySubject(subject entity.Subject) ([]*entity.Note, error) {
	return m.filter(func(n *entity.Note) bool { return n.Subject == subject }), nil
}

func (m *mockNoteRepo) FindByOwner(ownerID int64) ([]*entity.Note, error) {
	return m.filter(func(n *entity.Note) bool { return n.OwnerID == ownerID }), nil
}

func (m *mockNoteRepo) Search(keyword string, limit int) ([]*entity.Note, error) {
	out := m.filter(func(n *entity.Note) bool {
		return strings.Contains(n.Title, keyword) || strings.Contains(string(n.Subject), keyword)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNoteRepo) DeleteOwned(id, ownerID int64) (bool, error) {
	if n, ok := m.notes[id]; ok && n.OwnerID == ownerID {
		delete(m.notes, id)
		return true, nil
	}
	return false, nil
}

func (m *mockNoteRepo) Delete(id int64) (bool, error) {
	if _, ok := m.notes[id]; ok {
		delete(m.notes, id)
		return true, nil
	}
	return false, nil
}

type mockUserRepo struct {
	users map[int64]*entity.User
}

func newMockUserRepo(ids ...int64) *mockUserRepo {
	m := &mockUserRepo{users: make(map[int64]*entity.User)}
	for _, id := range ids {
		m.users[id] = &entity.User{ID: id}
	}
	return m
}

func (m *mockUserRepo) Register(user *entity.User) error {
	if _, ok := m.users[user.ID]; !ok {
		cp := *user
		m.users[user.ID] = &cp
	}
	return nil
}

func (m *mockUserRepo) FindAllIDs() ([]int64, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockUserRepo) Count() (int64, error) {
	return int64(len(m.users)), nil
}

type sentMessage struct {
	Kind   string // text, document, photo
	ChatID int64
	Text   string
}

type mockMessenger struct {
	mu          sync.Mutex
	sent        []sentMessage
	unreachable map[int64]bool
	failDoc     bool
	failPhoto   bool
}

func newMockMessenger() *mockMessenger {
	return &mockMessenger{unreachable: make(map[int64]bool)}
}

func (m *mockMessenger) record(kind string, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unreachable[chatID] {
		return errUnreachable
	}
	m.sent = append(m.sent, sentMessage{Kind: kind, ChatID: chatID, Text: text})
	return nil
}

func (m *mockMessenger) Send(_ context.Context, chatID int64, reply *contract.Reply) error {
	return m.record("text", chatID, reply.Text)
}

func (m *mockMessenger) Edit(_ context.Context, chatID int64, _ int, reply *contract.Reply) error {
	return m.record("edit", chatID, reply.Text)
}

func (m *mockMessenger) SendDocument(_ context.Context, chatID int64, fileRef, caption string) error {
	if m.failDoc {
		return errors.New("Bad Request: wrong file identifier")
	}
	return m.record("document", chatID, fileRef)
}

func (m *mockMessenger) SendPhoto(_ context.Context, chatID int64, fileRef, caption string) error {
	if m.failPhoto {
		return errors.New("Bad Request: wrong file identifier")
	}
	return m.record("photo", chatID, fileRef)
}

func (m *mockMessenger) AnswerCallback(context.Context, string) error {
	return nil
}

func (m *mockMessenger) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, s := range m.sent {
		out[i] = s.Kind
	}
	return out
}
