package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ProviderURL    string
	ProviderAPIKey string

	// ProfilesDSN selects the Postgres profile store; empty means profiles
	// are written through the provider's data API.
	ProfilesDSN string

	SessionDBPath  string
	RequestTimeout time.Duration

	// BreachRangeURL enables the breached-password lookup of the strength
	// oracle.
	BreachRangeURL string

	WebAddr  string
	LogLevel string
}

func (c *Config) LoadDefaults() {
	c.ProviderURL = "http://127.0.0.1:54321"
	c.ProviderAPIKey = ""
	c.ProfilesDSN = ""
	c.SessionDBPath = "authdash.db"
	c.RequestTimeout = 10 * time.Second
	c.BreachRangeURL = ""
	c.WebAddr = "127.0.0.1:8080"
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ProviderURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: provider url %q", ErrInvalidConfig, c.ProviderURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	if c.SessionDBPath == "" {
		return fmt.Errorf("%w: session db path is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
