// Package progress persists completion events and maintains each user's
// per-category lesson progress.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/db"
	"github.com/masterenglish/server/pkg/logger"
	"github.com/masterenglish/server/pkg/scoring"
	"github.com/masterenglish/server/pkg/writing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tracker owns every write to the progress tables. The clock is injectable
// for tests.
type Tracker struct {
	now func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

var DefaultTracker = NewTracker(nil)

// EnsureLessonProgress provisions the per-category progress rows a user's
// dashboard and aggregator rely on. Safe to call on every lessons view.
func (t *Tracker) EnsureLessonProgress(ctx context.Context, userID string) error {
	for _, category := range content.Categories() {
		row := db.LessonProgress{
			UserID:       userID,
			Category:     category.ID,
			TotalLessons: category.Lessons,
			Status:       db.StatusNotStarted,
		}
		err := db.DB.WithContext(ctx).
			Where("user_id = ? AND category = ?", userID, category.ID).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateLessonProgress applies a session score to the user's progress row for
// the category. Best-effort: failures are logged and swallowed, and a missing
// row skips the update entirely.
func (t *Tracker) UpdateLessonProgress(ctx context.Context, userID, category string, scorePercentage int) {
	var current db.LessonProgress
	err := db.DB.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug("no lesson progress row, skipping update", "user_id", userID, "category", category)
		return
	}
	if err != nil {
		logger.Error("failed to read lesson progress", "user_id", userID, "category", category, "error", err)
		return
	}

	newProgress := current.OverallProgress + scoring.Increment(scorePercentage)
	if newProgress > 100 {
		newProgress = 100
	}
	status := db.StatusInProgress
	if newProgress >= 100 {
		status = db.StatusCompleted
	}

	updates := map[string]any{
		"overall_progress":      newProgress,
		"lessons_completed":     current.LessonsCompleted + 1,
		"last_lesson_completed": fmt.Sprintf("Quiz completed with %d%% score", scorePercentage),
		"status":                status,
		"updated_at":            t.now().UTC(),
	}
	err = db.DB.WithContext(ctx).
		Model(&db.LessonProgress{}).
		Where("user_id = ? AND category = ?", userID, category).
		Updates(updates).Error
	if err != nil {
		logger.Error("failed to update lesson progress", "user_id", userID, "category", category, "error", err)
	}
}

// SaveQuizAttempt records a completed quiz session, then feeds the score into
// the lesson progress and stats for the category. The insert failure is the
// caller's problem; the follow-up updates are best-effort.
func (t *Tracker) SaveQuizAttempt(ctx context.Context, userID, category string, total, correct, elapsedSeconds int) error {
	scorePercentage, err := scoring.Percent(correct, total)
	if err != nil {
		return err
	}

	attempt := db.QuizAttempt{
		UserID:           userID,
		Category:         category,
		QuestionsTotal:   total,
		QuestionsCorrect: correct,
		ScorePercentage:  scorePercentage,
		TimeTakenSeconds: elapsedSeconds,
		CompletedAt:      t.now().UTC(),
	}
	if err := db.DB.WithContext(ctx).Create(&attempt).Error; err != nil {
		logger.Error("failed to save quiz attempt", "user_id", userID, "category", category, "error", err)
		return err
	}

	t.UpdateLessonProgress(ctx, userID, category, scorePercentage)
	t.recordActivity(ctx, userID, 0)
	return nil
}

// SaveIdiomPracticeSession records a completed practice run and updates the
// idioms category.
func (t *Tracker) SaveIdiomPracticeSession(ctx context.Context, userID string, practiced, correct int) error {
	scorePercentage, err := scoring.Percent(correct, practiced)
	if err != nil {
		return err
	}

	session := db.IdiomPracticeSession{
		UserID:          userID,
		IdiomsPracticed: practiced,
		IdiomsCorrect:   correct,
		ScorePercentage: scorePercentage,
		CompletedAt:     t.now().UTC(),
	}
	if err := db.DB.WithContext(ctx).Create(&session).Error; err != nil {
		logger.Error("failed to save practice session", "user_id", userID, "error", err)
		return err
	}

	t.UpdateLessonProgress(ctx, userID, content.CategoryIdioms, scorePercentage)
	t.recordActivity(ctx, userID, practiced)
	return nil
}

// SaveIdiom copies a library idiom into the user's saved set. Saving an
// already-saved idiom is a no-op reported as success.
func (t *Tracker) SaveIdiom(ctx context.Context, userID string, entry content.IdiomEntry) error {
	row := db.SavedIdiom{
		UserID:     userID,
		IdiomText:  entry.Idiom,
		Meaning:    entry.Meaning,
		Example:    entry.Example,
		Category:   entry.Category,
		Difficulty: entry.Difficulty,
		Origin:     entry.Origin,
		SavedAt:    t.now().UTC(),
	}
	return db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "idiom_text"},
		},
		DoNothing: true,
	}).Create(&row).Error
}

// RemoveSavedIdiom deletes the user's saved copy by idiom text.
func (t *Tracker) RemoveSavedIdiom(ctx context.Context, userID, idiomText string) error {
	return db.DB.WithContext(ctx).
		Where("user_id = ? AND idiom_text = ?", userID, idiomText).
		Delete(&db.SavedIdiom{}).Error
}

// SavedIdioms returns the user's saved set, most recent first.
func (t *Tracker) SavedIdioms(ctx context.Context, userID string) ([]db.SavedIdiom, error) {
	var idioms []db.SavedIdiom
	err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&idioms).Error
	return idioms, err
}

// SaveWritingAnalysis logs an analysis result and feeds the average of the
// three scores into the writing category.
func (t *Tracker) SaveWritingAnalysis(ctx context.Context, userID, text string, analysis writing.Analysis) error {
	row := db.WritingAnalysis{
		UserID:           userID,
		TextContent:      text,
		WordCount:        analysis.WordCount,
		GrammarScore:     analysis.GrammarScore,
		ClarityScore:     analysis.ClarityScore,
		ToneScore:        analysis.ToneScore,
		ReadingLevel:     analysis.ReadingLevel,
		SuggestionsCount: len(analysis.Suggestions),
		AnalyzedAt:       t.now().UTC(),
	}
	if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Error("failed to save writing analysis", "user_id", userID, "error", err)
		return err
	}

	t.UpdateLessonProgress(ctx, userID, content.CategoryWriting, writing.AverageScore(analysis))
	t.recordActivity(ctx, userID, 0)
	return nil
}

// SaveDailyPromptCompletion upserts the user's response for a prompt: one row
// per (user, date, title), repeated submission overwrites.
func (t *Tracker) SaveDailyPromptCompletion(ctx context.Context, userID, promptDate, promptTitle, promptType, response string, wordCount int) error {
	row := db.DailyPromptCompletion{
		UserID:       userID,
		PromptDate:   promptDate,
		PromptTitle:  promptTitle,
		PromptType:   promptType,
		UserResponse: response,
		WordCount:    wordCount,
		CompletedAt:  t.now().UTC(),
	}
	err := db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "prompt_date"},
			{Name: "prompt_title"},
		},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		logger.Error("failed to save prompt completion", "user_id", userID, "error", err)
		return err
	}

	t.recordActivity(ctx, userID, 0)
	return nil
}

// PromptCompletion looks up the user's response for a prompt, nil when the
// prompt has not been completed.
func (t *Tracker) PromptCompletion(ctx context.Context, userID, promptDate, promptTitle string) (*db.DailyPromptCompletion, error) {
	var row db.DailyPromptCompletion
	err := db.DB.WithContext(ctx).
		Where("user_id = ? AND prompt_date = ? AND prompt_title = ?", userID, promptDate, promptTitle).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// LessonProgressAll returns the user's progress rows ordered by category.
func (t *Tracker) LessonProgressAll(ctx context.Context, userID string) ([]db.LessonProgress, error) {
	var rows []db.LessonProgress
	err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category").
		Find(&rows).Error
	return rows, err
}

// RecentQuizAttempts returns the user's latest attempts for the dashboard.
func (t *Tracker) RecentQuizAttempts(ctx context.Context, userID string, limit int) ([]db.QuizAttempt, error) {
	var attempts []db.QuizAttempt
	err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
