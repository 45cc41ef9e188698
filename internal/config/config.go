package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	APIBaseURL      string        `env:"API_BASE_URL" envDefault:"http://localhost:5000/api/v1"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	DBPath          string        `env:"DB_PATH" envDefault:"/data/pantraqa.db"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	StockPageSize   int           `env:"STOCK_PAGE_SIZE" envDefault:"10"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string        `env:"LOG_FILE"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	LoginRateLimit  float64       `env:"LOGIN_RATE_LIMIT" envDefault:"0.5"`
	LoginBurst      int           `env:"LOGIN_BURST" envDefault:"5"`

	// CSRFTrustedOrigins are host:port pairs allowed to send cross-origin
	// state-changing requests, for example a separate admin frontend.
	CSRFTrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS" envSeparator:","`
}

// IsDevelopment reports whether cookies may be sent over plain HTTP.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads the configuration from the environment. Callers that want .env
// support load the file before calling Load.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.StockPageSize < 1 {
		return nil, fmt.Errorf("STOCK_PAGE_SIZE must be positive, got %d", cfg.StockPageSize)
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	return cfg, nil
}
