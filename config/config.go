package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	DBPath            string `env:"DB_PATH" envDefault:"./inventory.db"`
	WorkbookPath      string `env:"WORKBOOK_PATH"` // empty disables import and snapshots
	ReportDir         string `env:"REPORT_DIR" envDefault:"./reports"`
	LowStockThreshold int    `env:"LOW_STOCK_THRESHOLD" envDefault:"5"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	SMTP              SMTP   `envPrefix:"SMTP_"`
}

// SMTP holds the mail transport; User and Password are the credential pair
// used to send reports.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.LowStockThreshold < 0 {
		return Config{}, errors.New("LOW_STOCK_THRESHOLD must be >= 0")
	}
	return cfg, nil
}
