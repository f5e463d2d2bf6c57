package main

import (
	"log/slog"
	"os"

	"go-file-manager/internal/app"
	"go-file-manager/internal/config"
	"go-file-manager/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup(os.Stderr, slog.LevelInfo, true)
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(os.Stdout, cfg.LogLevel, true)

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
