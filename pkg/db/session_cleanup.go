package db

import (
	"context"
	"time"

	"github.com/masterenglish/server/pkg/logger"
)

const SessionCleanupInterval = time.Hour

// CleanupExpiredSessions drops persisted quiz and practice session snapshots
// whose TTL has passed. In-memory state is swept separately by the managers.
func CleanupExpiredSessions(now time.Time) (int64, error) {
	if DB == nil {
		return 0, nil
	}
	var deleted int64

	res := DB.Where("expires_at <= ?", now).Delete(&QuizSessionState{})
	if res.Error != nil {
		return deleted, res.Error
	}
	deleted += res.RowsAffected

	res = DB.Where("expires_at <= ?", now).Delete(&PracticeSessionState{})
	if res.Error != nil {
		return deleted, res.Error
	}
	deleted += res.RowsAffected

	return deleted, nil
}

func StartSessionCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SessionCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := CleanupExpiredSessions(time.Now().UTC()); err != nil {
				logger.Error("failed to cleanup expired sessions", "error", err)
			}
		}
	}
}
