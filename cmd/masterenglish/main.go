package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/masterenglish/server/pkg/config"
	"github.com/masterenglish/server/pkg/db"
	"github.com/masterenglish/server/pkg/logger"
	"github.com/masterenglish/server/pkg/practice"
	"github.com/masterenglish/server/pkg/quiz"
	"github.com/masterenglish/server/pkg/server"
)

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level:  config.AppConfig.Logging.Level,
		Format: config.AppConfig.Logging.Format,
		File:   config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go quiz.StartQuizSweeper(ctx)
	go practice.StartPracticeSweeper(ctx)
	go db.StartSessionCleanup(ctx, db.SessionCleanupInterval)

	srv := server.New(server.Options{CORS: config.AppConfig.Server})

	logger.Info("Starting server...", "addr", config.AppConfig.Server.ListenAddr)
	if err := srv.Run(config.AppConfig.Server.ListenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
