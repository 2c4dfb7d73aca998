package progress

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/masterenglish/server/pkg/db"
	"github.com/masterenglish/server/pkg/logger"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Stats returns the user's summary row, or nil when no activity has been
// recorded yet.
func (t *Tracker) Stats(ctx context.Context, userID string) (*db.UserStats, error) {
	var stats db.UserStats
	err := db.DB.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// recordActivity maintains the UserStats row after a completion event:
// streak arithmetic keyed on calendar days, running totals, and the mean of
// the per-category progress values. Best-effort, never blocks the caller.
func (t *Tracker) recordActivity(ctx context.Context, userID string, wordsLearned int) {
	stats := db.UserStats{UserID: userID}
	err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&stats).Error
	if err != nil {
		logger.Error("failed to load user stats", "user_id", userID, "error", err)
		return
	}

	today := t.now().UTC().Format(dateLayout)
	switch stats.LastActivityDate {
	case today:
		// Second event today, streak unchanged.
	case yesterdayOf(today):
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastActivityDate = today
	stats.TotalLessonsCompleted++
	stats.TotalWordsLearned += wordsLearned
	stats.OverallProgress = t.meanProgress(ctx, userID)

	if err := db.DB.WithContext(ctx).Save(&stats).Error; err != nil {
		logger.Error("failed to update user stats", "user_id", userID, "error", err)
	}
}

func (t *Tracker) meanProgress(ctx context.Context, userID string) int {
	rows, err := t.LessonProgressAll(ctx, userID)
	if err != nil {
		logger.Error("failed to read lesson progress for stats", "user_id", userID, "error", err)
		return 0
	}
	if len(rows) == 0 {
		return 0
	}
	var sum int
	for _, row := range rows {
		sum += row.OverallProgress
	}
	return int(math.Round(float64(sum) / float64(len(rows))))
}

func yesterdayOf(date string) string {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return day.AddDate(0, 0, -1).Format(dateLayout)
}
