package server

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/logger"
)

func (s *Server) handleIdiomLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"idioms":     content.FilterIdioms(c.Query("q"), c.Query("category")),
		"categories": content.IdiomCategories(),
	})
}

func (s *Server) handleSavedIdioms(c *gin.Context) {
	idioms, err := s.tracker.SavedIdioms(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load saved idioms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"idioms": idioms})
}

type saveIdiomRequest struct {
	Idiom string `json:"idiom"`
}

func (s *Server) handleSaveIdiom(c *gin.Context) {
	var req saveIdiomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Idiom == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idiom is required"})
		return
	}
	entry, ok := content.IdiomByText(req.Idiom)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "idiom not found in library"})
		return
	}
	if err := s.tracker.SaveIdiom(c.Request.Context(), currentUserID(c), entry); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save idiom"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": entry.Idiom})
}

func (s *Server) handleRemoveSavedIdiom(c *gin.Context) {
	if err := s.tracker.RemoveSavedIdiom(c.Request.Context(), currentUserID(c), c.Param("text")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to remove idiom"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("text")})
}

func (s *Server) handleExportSavedIdioms(c *gin.Context) {
	userID := currentUserID(c)
	idioms, err := s.tracker.SavedIdioms(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load saved idioms"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=saved-idioms-%s.csv", s.now().Format("2006-01-02")))

	w := csv.NewWriter(c.Writer)
	records := [][]string{{"idiom", "meaning", "example", "category", "difficulty", "saved_at"}}
	for _, idiom := range idioms {
		records = append(records, []string{
			idiom.IdiomText,
			idiom.Meaning,
			idiom.Example,
			idiom.Category,
			idiom.Difficulty,
			idiom.SavedAt.Format(time.RFC3339),
		})
	}
	if err := w.WriteAll(records); err != nil {
		logger.Error("failed to write idiom export", "user_id", userID, "error", err)
	}
}
