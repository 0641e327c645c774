// Package main is the entry point for the skill gap analyzer server.
//
// Its job is the usual three steps: read configuration, create the
// dependencies (logger, mailer), start the application. All actual logic
// lives in the internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/skillgap/internal/config"
	"github.com/sakif/skillgap/internal/notifier"
	"github.com/sakif/skillgap/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET is not set — generate one with: openssl rand -hex 32")
		os.Exit(1)
	}

	// Ensure the data directory exists for a file-backed database.
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// The mailer is optional: without the two mail secrets the server
	// still starts and reminder endpoints report missing configuration.
	var mailer notifier.Sender
	if cfg.MailConfigured() {
		smtp, err := notifier.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, logger)
		if err != nil {
			logger.Error("failed to create mailer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		mailer = smtp
	} else {
		logger.Warn("EMAIL_USER/EMAIL_PASS not set — email reminders are disabled")
	}

	srv, err := server.New(cfg, logger, mailer)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
