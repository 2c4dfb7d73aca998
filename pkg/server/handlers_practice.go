package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/practice"
)

func (s *Server) handlePracticeStart(c *gin.Context) {
	card, err := s.practice.Start(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, practice.ErrNothingToPractice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "save some idioms before practicing"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to start practice"})
		return
	}
	c.JSON(http.StatusOK, card)
}

type practiceAnswerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handlePracticeAnswer(c *gin.Context) {
	var req practiceAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer is required"})
		return
	}
	result, err := s.practice.Answer(currentUserID(c), req.Answer)
	if err != nil {
		s.practiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handlePracticeContinue(c *gin.Context) {
	result, err := s.practice.Continue(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.practiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type quickCheckRequest struct {
	Idiom  string `json:"idiom"`
	Answer string `json:"answer"`
}

func (s *Server) handlePracticeQuickCheck(c *gin.Context) {
	var req quickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Idiom == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idiom and answer are required"})
		return
	}
	result, ok := practice.CheckAnswer(req.Idiom, req.Answer)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "idiom not found in library"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) practiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, practice.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, practice.ErrEmptyAnswer),
		errors.Is(err, practice.ErrAlreadyRevealed),
		errors.Is(err, practice.ErrNotRevealed),
		errors.Is(err, practice.ErrSessionCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to record results, your session is preserved"})
	}
}
