// Package server exposes the learning features over an HTTP API.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/config"
	"github.com/masterenglish/server/pkg/practice"
	"github.com/masterenglish/server/pkg/progress"
	"github.com/masterenglish/server/pkg/quiz"
)

// Server wires the session managers and the progress tracker into a gin
// engine. Dependencies are injectable for tests.
type Server struct {
	engine   *gin.Engine
	tracker  *progress.Tracker
	quiz     *quiz.Manager
	practice *practice.Manager
	now      func() time.Time
}

// Options carries the server's collaborators; nil fields fall back to the
// package defaults.
type Options struct {
	Tracker  *progress.Tracker
	Quiz     *quiz.Manager
	Practice *practice.Manager
	Now      func() time.Time
	CORS     config.ServerConfig
}

func New(opts Options) *Server {
	if opts.Tracker == nil {
		opts.Tracker = progress.DefaultTracker
	}
	if opts.Quiz == nil {
		opts.Quiz = quiz.DefaultManager
	}
	if opts.Practice == nil {
		opts.Practice = practice.DefaultManager
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		engine:   gin.New(),
		tracker:  opts.Tracker,
		quiz:     opts.Quiz,
		practice: opts.Practice,
		now:      opts.Now,
	}
	s.engine.Use(gin.Recovery(), requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(opts.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, userIDHeader)
	s.engine.Use(cors.New(corsConfig))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealthz)

	api := s.engine.Group("/api/v1", requireUserID())

	api.GET("/categories", s.handleCategories)

	api.GET("/quiz/:category/questions", s.handleQuizQuestions)
	api.POST("/quiz/:category/start", s.handleQuizStart)
	api.POST("/quiz/answer", s.handleQuizAnswer)
	api.POST("/quiz/submit", s.handleQuizSubmit)
	api.POST("/quiz/continue", s.handleQuizContinue)

	api.GET("/idioms", s.handleIdiomLibrary)
	api.GET("/idioms/saved", s.handleSavedIdioms)
	api.POST("/idioms/saved", s.handleSaveIdiom)
	api.DELETE("/idioms/saved/:text", s.handleRemoveSavedIdiom)
	api.GET("/idioms/saved/export", s.handleExportSavedIdioms)

	api.POST("/practice/start", s.handlePracticeStart)
	api.POST("/practice/answer", s.handlePracticeAnswer)
	api.POST("/practice/continue", s.handlePracticeContinue)
	api.POST("/practice/quick-check", s.handlePracticeQuickCheck)

	api.POST("/writing/analyze", s.handleWritingAnalyze)

	api.GET("/prompts/today", s.handlePromptToday)
	api.POST("/prompts/complete", s.handlePromptComplete)

	api.GET("/dashboard", s.handleDashboard)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run blocks serving on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
