package session

import (
	"context"
	"sync"

	"excelbot/cmd/internal/domain/entity"
)

// MemoryStore keeps upload sessions in process memory. Sessions are lost on
// restart, which only means an unfinished upload has to be started again.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]entity.UploadSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]entity.UploadSession)}
}

// Get returns a copy of the user's session, or nil when there is none.
func (m *MemoryStore) Get(_ context.Context, userID int64) (*entity.UploadSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Put(_ context.Context, userID int64, s *entity.UploadSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// DeleteExpired drops sessions untouched since before (epoch millis) and
// returns how many were removed.
func (m *MemoryStore) DeleteExpired(before int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt < before {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
