package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"excelbot/cmd/internal/domain/entity"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "excelbot:upload:"

// RedisStore keeps upload sessions in Redis so they survive restarts and
// can be shared by several bot replicas behind one webhook.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: redis ping failed: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context, userID int64) (*entity.UploadSession, error) {
	raw, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s entity.UploadSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session: corrupt entry for user %d: %w", userID, err)
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, userID int64, s *entity.UploadSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(userID), raw, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, key(userID)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
