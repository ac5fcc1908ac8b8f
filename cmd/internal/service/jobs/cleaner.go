package jobs

import (
	"context"
	"time"

	"excelbot/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const SessionCleanInterval = 5 * time.Minute

type ExpiringSessionStore interface {
	DeleteExpired(before int64) int
}

// SessionCleaner drops upload dialogues that were abandoned halfway, so an
// in-memory session store does not grow forever.
type SessionCleaner struct {
	store ExpiringSessionStore
	ttl   time.Duration
}

func NewSessionCleaner(store ExpiringSessionStore, ttl time.Duration) *SessionCleaner {
	return &SessionCleaner{store: store, ttl: ttl}
}

func (c *SessionCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(SessionCleanInterval)
	defer ticker.Stop()

	log.Info("Session cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping session cleaner...")
			return
		case <-ticker.C:
			c.cleanup(utils.NowUTC())
		}
	}
}

func (c *SessionCleaner) cleanup(now int64) {
	cutoff := now - c.ttl.Milliseconds()

	removed := c.store.DeleteExpired(cutoff)
	if removed == 0 {
		return
	}

	log.Infof("Cleaner: dropped %d abandoned upload sessions", removed)
}
