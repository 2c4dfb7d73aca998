package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/db"
)

// categoryView is one catalog entry merged with the user's progress row.
type categoryView struct {
	content.LessonCategory
	OverallProgress     int    `json:"overallProgress"`
	LessonsCompleted    int    `json:"lessonsCompleted"`
	LastLessonCompleted string `json:"lastLessonCompleted,omitempty"`
	Status              string `json:"status"`
}

func (s *Server) handleCategories(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	if err := s.tracker.EnsureLessonProgress(ctx, userID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to provision progress"})
		return
	}
	rows, err := s.tracker.LessonProgressAll(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": mergeCatalog(rows)})
}

func mergeCatalog(rows []db.LessonProgress) []categoryView {
	byCategory := make(map[string]db.LessonProgress, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = row
	}
	views := make([]categoryView, 0, len(content.Categories()))
	for _, cat := range content.Categories() {
		view := categoryView{LessonCategory: cat, Status: db.StatusNotStarted}
		if row, ok := byCategory[cat.ID]; ok {
			view.OverallProgress = row.OverallProgress
			view.LessonsCompleted = row.LessonsCompleted
			view.LastLessonCompleted = row.LastLessonCompleted
			view.Status = row.Status
		}
		views = append(views, view)
	}
	return views
}

const recentAttemptsLimit = 10

func (s *Server) handleDashboard(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	if err := s.tracker.EnsureLessonProgress(ctx, userID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to provision progress"})
		return
	}

	stats, err := s.tracker.Stats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load stats"})
		return
	}
	if stats == nil {
		stats = &db.UserStats{UserID: userID}
	}

	rows, err := s.tracker.LessonProgressAll(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load progress"})
		return
	}
	attempts, err := s.tracker.RecentQuizAttempts(ctx, userID, recentAttemptsLimit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load attempts"})
		return
	}
	saved, err := s.tracker.SavedIdioms(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load saved idioms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"currentStreak":         stats.CurrentStreak,
			"longestStreak":         stats.LongestStreak,
			"lastActivityDate":      stats.LastActivityDate,
			"totalLessonsCompleted": stats.TotalLessonsCompleted,
			"totalWordsLearned":     stats.TotalWordsLearned,
			"overallProgress":       stats.OverallProgress,
		},
		"categories":     mergeCatalog(rows),
		"recentAttempts": attempts,
		"savedIdioms":    len(saved),
	})
}
