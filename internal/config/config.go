// Package config loads all runtime configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/skillgap/internal/streak"
)

// Config is everything the server needs from the environment.
type Config struct {
	Port          int
	DBPath        string
	SessionSecret string
	StreakPolicy  streak.Policy

	// Mail settings. EmailUser/EmailPass are the two secrets; when either
	// is absent the notifier runs disabled — reminders fail with a visible
	// "not configured" error instead of the process crashing.
	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
}

// MailConfigured reports whether both mail secrets are present.
func (c Config) MailConfigured() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

// Load reads the .env file (if one exists) and the process environment.
//
// godotenv.Load never overrides variables already set in the environment,
// so real env vars win over .env entries. A missing .env file is not an
// error — production sets everything through the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          8080,
		DBPath:        "data/skillgap.db",
		SessionSecret: os.Getenv("SESSION_SECRET"),
		StreakPolicy:  streak.PolicyCumulative,
		SMTPHost:      "smtp.gmail.com",
		SMTPPort:      465,
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	// The streak-reset rule is a named deployment choice, never inferred.
	if v := os.Getenv("STREAK_POLICY"); v != "" {
		p := streak.Policy(v)
		if !p.Valid() {
			return Config{}, fmt.Errorf("config: invalid STREAK_POLICY %q (want %q or %q)",
				v, streak.PolicyCumulative, streak.PolicyConsecutive)
		}
		cfg.StreakPolicy = p
	}

	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTPPort = port
	}

	return cfg, nil
}
