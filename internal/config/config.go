package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Materialization policies.
const (
	PolicyWeekday = "weekday"
	PolicyRandom  = "random"
)

const defaultMaxUploadMB = 16

// Config keeps runtime settings for the service.
type Config struct {
	Port           string
	DatabaseURL    string
	UploadDir      string
	MaxUploadBytes int64
	PointsPerTask  int
	Policy         string
	// MaterializeTime is the HH:MM at which the new day's occurrences
	// are built ahead of the first dashboard request.
	MaterializeTime string
	// RematerializeInterval re-runs materialization during the day so
	// newly added extras and processes started mid-day catch up.
	RematerializeInterval time.Duration
	// SummaryTime enables the Telegram daily summary when both it and
	// the Telegram settings are present.
	SummaryTime    string
	TelegramToken  string
	TelegramChatID int64
	LogLevel       string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		UploadDir:       strings.TrimSpace(os.Getenv("UPLOAD_DIR")),
		Policy:          strings.TrimSpace(os.Getenv("MATERIALIZE_POLICY")),
		MaterializeTime: strings.TrimSpace(os.Getenv("MATERIALIZE_TIME")),
		SummaryTime:     strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		LogLevel:        strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "dualtrack.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyWeekday
	}
	if cfg.Policy != PolicyWeekday && cfg.Policy != PolicyRandom {
		return cfg, fmt.Errorf("MATERIALIZE_POLICY must be %q or %q, got %q", PolicyWeekday, PolicyRandom, cfg.Policy)
	}
	if cfg.MaterializeTime == "" {
		cfg.MaterializeTime = "00:05"
	}

	cfg.RematerializeInterval = parseInterval(strings.TrimSpace(os.Getenv("REMATERIALIZE_INTERVAL_HOURS")))
	if cfg.RematerializeInterval == 0 {
		cfg.RematerializeInterval = 6 * time.Hour
	}

	cfg.MaxUploadBytes = int64(parsePositiveInt(os.Getenv("MAX_UPLOAD_MB"), defaultMaxUploadMB)) << 20
	cfg.PointsPerTask = parsePositiveInt(os.Getenv("POINTS_PER_TASK"), 15)

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// TelegramEnabled reports whether the daily summary notifier should run.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0 && c.SummaryTime != ""
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
