package jobs

import (
	"context"
	"testing"
	"time"

	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/infrastructure/session"
)

func TestSessionCleaner_Cleanup(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	_ = store.Put(ctx, 1, &entity.UploadSession{State: entity.StateAwaitingTitle, UpdatedAt: 0})
	_ = store.Put(ctx, 2, &entity.UploadSession{State: entity.StateAwaitingTitle, UpdatedAt: 50 * 60 * 1000})

	cleaner := NewSessionCleaner(store, time.Hour)
	cleaner.cleanup(61 * 60 * 1000)

	if got, _ := store.Get(ctx, 1); got != nil {
		t.Error("expected abandoned session to be dropped")
	}
	if got, _ := store.Get(ctx, 2); got == nil {
		t.Error("expected recent session to be kept")
	}
}

func TestSessionCleaner_StopsWithContext(t *testing.T) {
	cleaner := NewSessionCleaner(session.NewMemoryStore(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cleaner.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop")
	}
}
