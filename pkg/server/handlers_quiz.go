package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/quiz"
)

func (s *Server) handleQuizQuestions(c *gin.Context) {
	category := content.NormalizeCategory(c.Param("category"))
	c.JSON(http.StatusOK, gin.H{
		"category":  category,
		"questions": content.QuestionsForCategory(category),
	})
}

func (s *Server) handleQuizStart(c *gin.Context) {
	snapshot := s.quiz.Start(currentUserID(c), c.Param("category"))
	c.JSON(http.StatusOK, snapshot)
}

type quizAnswerRequest struct {
	Option *int `json:"option"`
}

func (s *Server) handleQuizAnswer(c *gin.Context) {
	var req quizAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Option == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "option is required"})
		return
	}
	if err := s.quiz.SelectAnswer(currentUserID(c), *req.Option); err != nil {
		s.quizError(c, err)
		return
	}
	snapshot, _ := s.quiz.Get(currentUserID(c))
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleQuizSubmit(c *gin.Context) {
	result, err := s.quiz.Submit(currentUserID(c))
	if err != nil {
		s.quizError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleQuizContinue(c *gin.Context) {
	result, err := s.quiz.Continue(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.quizError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// quizError maps controller errors onto statuses: a missing session is 404,
// an out-of-order or invalid transition is 400, anything else is a failed
// save with the session still intact.
func (s *Server) quizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, quiz.ErrNoSelection),
		errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrSessionCompleted),
		errors.Is(err, quiz.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to record results, your session is preserved"})
	}
}
