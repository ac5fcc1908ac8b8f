package session

import (
	"context"
	"os"
	"testing"
	"time"

	"excelbot/cmd/internal/domain/entity"

	"github.com/go-redis/redis/v8"
	"github.com/google/go-cmp/cmp"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	store, err := NewRedisStore(ctx, &redis.Options{Addr: addr}, time.Minute)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer store.Close()

	const userID = -424242
	_ = store.Delete(ctx, userID)

	want := &entity.UploadSession{State: entity.StateAwaitingSubject, FileRef: "f", FileUniqueRef: "u", Title: "Cell Structure", UpdatedAt: 5}
	if err := store.Put(ctx, userID, want); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := store.Get(ctx, userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got, _ := store.Get(ctx, userID); got != nil {
		t.Error("expected session to be deleted")
	}
}
