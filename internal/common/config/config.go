package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds everything both processes (bot and dashboard) read from the
// environment. Secrets are tagged required so a misconfigured deployment
// fails at startup instead of at the first request.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	}

	Sheets struct {
		SpreadsheetID   string `env:"GOOGLE_SHEETS_SPREADSHEET_ID,required"`
		CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS,required"`
	}

	Dashboard struct {
		User          string `env:"DASHBOARD_USER,required"`
		Pass          string `env:"DASHBOARD_PASS,required"`
		SessionSecret string `env:"SESSION_SECRET,required"`
	}

	// Optional redis backing for bot sessions. Empty Addr keeps sessions
	// in process memory.
	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Stats struct {
		// "events" counts every vote row, "latest" keeps the newest row
		// per voter before counting.
		Mode string `env:"STATS_MODE" envDefault:"events"`
	}

	// Centers always shown on the dashboard, even with no data yet.
	Centers []string `env:"CENTERS" envSeparator:","`

	Bot struct {
		PageSize          int `env:"BOT_PAGE_SIZE" envDefault:"20"`
		SummaryRefreshSec int `env:"SUMMARY_REFRESH_SEC" envDefault:"300"`
		SessionTTLSec     int `env:"SESSION_TTL_SEC" envDefault:"86400"`
	}
}

// Load reads .env if present, then parses the environment. Missing required
// variables make it fail.
func Load() (*Config, error) {
	// .env is a local-dev convenience; in production the variables are set
	// directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
