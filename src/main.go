package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/harshulchawla1408/Astrousers-sub000/logger"
	"github.com/harshulchawla1408/Astrousers-sub000/src/config"
	_ "github.com/harshulchawla1408/Astrousers-sub000/src/docs"
	"github.com/harshulchawla1408/Astrousers-sub000/src/server"
)

// @title Consult Service API
// @version 1.0
// @description Brokers live consultations between users and advisors over text, audio and video

func main() {
	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	srv, err := server.NewServer(&cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Run(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.GlobalConfig {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func setupLogging(level string) {
	logger.Init(level)

	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	})))
}
