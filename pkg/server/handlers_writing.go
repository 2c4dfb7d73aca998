package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/writing"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleWritingAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	analysis, err := writing.Analyze(req.Text)
	if err != nil {
		if errors.Is(err, writing.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please enter some text to analyze"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.tracker.SaveWritingAnalysis(c.Request.Context(), currentUserID(c), req.Text, analysis); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save analysis"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handlePromptToday(c *gin.Context) {
	today := s.now()
	prompt := content.PromptForDate(today)

	completion, err := s.tracker.PromptCompletion(
		c.Request.Context(), currentUserID(c), today.Format("2006-01-02"), prompt.Title)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load prompt status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prompt":    prompt,
		"completed": completion != nil,
	})
}

type promptCompleteRequest struct {
	PromptID int    `json:"promptId"`
	Response string `json:"response"`
}

func (s *Server) handlePromptComplete(c *gin.Context) {
	var req promptCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "promptId and response are required"})
		return
	}
	if strings.TrimSpace(req.Response) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "response must not be empty"})
		return
	}
	prompt, ok := content.PromptByID(req.PromptID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
		return
	}

	wordCount := len(strings.Fields(req.Response))
	err := s.tracker.SaveDailyPromptCompletion(
		c.Request.Context(), currentUserID(c),
		s.now().Format("2006-01-02"), prompt.Title, prompt.Type,
		req.Response, wordCount)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save completion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completed": true,
		"wordCount": wordCount,
	})
}
