package db

import (
	"time"

	"gorm.io/datatypes"
)

// Progress status values for LessonProgress.Status.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Difficulty levels for idioms and prompts.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// SavedIdiom is a per-user copy of a library idiom. A user may save a given
// idiom text at most once; re-saving is treated as success.
type SavedIdiom struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"size:36;index;uniqueIndex:idx_saved_idiom_user_text"`
	IdiomText  string `gorm:"not null;uniqueIndex:idx_saved_idiom_user_text"`
	Meaning    string `gorm:"not null"`
	Example    string `gorm:"not null"`
	Category   string `gorm:"not null"`
	Difficulty string `gorm:"not null;default:beginner"`
	Origin     string
	SavedAt    time.Time `gorm:"not null"`
}

// QuizAttempt is an append-only record of one completed quiz session.
type QuizAttempt struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"size:36;index"`
	Category         string `gorm:"not null;index"`
	QuestionsTotal   int    `gorm:"not null"`
	QuestionsCorrect int    `gorm:"not null"`
	ScorePercentage  int    `gorm:"not null"`
	TimeTakenSeconds int    `gorm:"not null;default:0"`
	CompletedAt      time.Time
}

// IdiomPracticeSession is an append-only record of one completed practice run.
type IdiomPracticeSession struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"size:36;index"`
	IdiomsPracticed int    `gorm:"not null"`
	IdiomsCorrect   int    `gorm:"not null"`
	ScorePercentage int    `gorm:"not null"`
	CompletedAt     time.Time
}

// LessonProgress is the single mutable row per (user, category).
// OverallProgress only moves upward and clamps at 100.
type LessonProgress struct {
	ID                  uint   `gorm:"primaryKey"`
	UserID              string `gorm:"size:36;index;uniqueIndex:idx_lesson_progress_user_category"`
	Category            string `gorm:"not null;uniqueIndex:idx_lesson_progress_user_category"`
	OverallProgress     int    `gorm:"not null;default:0"`
	LessonsCompleted    int    `gorm:"not null;default:0"`
	TotalLessons        int    `gorm:"not null;default:0"`
	LastLessonCompleted string
	Status              string `gorm:"not null;default:not_started"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WritingAnalysis is an informational log entry per analyzed text.
type WritingAnalysis struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"size:36;index"`
	TextContent      string `gorm:"type:text;not null"`
	WordCount        int    `gorm:"not null"`
	GrammarScore     int    `gorm:"not null;default:0"`
	ClarityScore     int    `gorm:"not null;default:0"`
	ToneScore        int    `gorm:"not null;default:0"`
	ReadingLevel     string
	SuggestionsCount int `gorm:"not null;default:0"`
	AnalyzedAt       time.Time
}

// DailyPromptCompletion holds at most one row per (user, date, title);
// repeated submission overwrites.
type DailyPromptCompletion struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"size:36;index;uniqueIndex:idx_prompt_completion_key"`
	PromptDate   string `gorm:"size:10;not null;uniqueIndex:idx_prompt_completion_key"`
	PromptTitle  string `gorm:"not null;uniqueIndex:idx_prompt_completion_key"`
	PromptType   string `gorm:"not null"`
	UserResponse string `gorm:"type:text"`
	WordCount    int    `gorm:"not null;default:0"`
	CompletedAt  time.Time
}

// UserStats is a single per-user summary row maintained on completion events.
type UserStats struct {
	ID                    uint   `gorm:"primaryKey"`
	UserID                string `gorm:"size:36;uniqueIndex"`
	CurrentStreak         int    `gorm:"not null;default:0"`
	LongestStreak         int    `gorm:"not null;default:0"`
	LastActivityDate      string `gorm:"size:10"`
	TotalLessonsCompleted int    `gorm:"not null;default:0"`
	TotalWordsLearned     int    `gorm:"not null;default:0"`
	OverallProgress       int    `gorm:"not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// QuizSessionState is the persisted snapshot of an in-flight quiz session so
// an interrupted session survives a process restart. One row per user.
type QuizSessionState struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         string         `gorm:"size:36;uniqueIndex:idx_quiz_session_user"`
	Category       string         `gorm:"not null"`
	QuestionIDs    datatypes.JSON `gorm:"not null"`
	CurrentIndex   int            `gorm:"not null;default:0"`
	Phase          string         `gorm:"not null;default:answering"`
	SelectedOption int            `gorm:"not null;default:-1"`
	CorrectCount   int            `gorm:"not null;default:0"`
	Results        datatypes.JSON
	StartedAt      time.Time `gorm:"not null"`
	LastActivityAt time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PracticeSessionState mirrors QuizSessionState for idiom practice runs.
type PracticeSessionState struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         string         `gorm:"size:36;uniqueIndex:idx_practice_session_user"`
	IdiomIDs       datatypes.JSON `gorm:"not null"`
	CurrentIndex   int            `gorm:"not null;default:0"`
	Phase          string         `gorm:"not null;default:presenting"`
	CorrectCount   int            `gorm:"not null;default:0"`
	Results        datatypes.JSON
	StartedAt      time.Time `gorm:"not null"`
	LastActivityAt time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
