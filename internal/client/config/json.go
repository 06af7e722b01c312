package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/authdash/internal/flagx"
	"github.com/dmitrijs2005/authdash/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ProviderURL    string         `json:"provider_url"`
	ProviderAPIKey string         `json:"provider_api_key"`
	ProfilesDSN    string         `json:"profiles_dsn"`
	SessionDBPath  string         `json:"session_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	BreachRangeURL string         `json:"breach_range_url"`
	WebAddr        string         `json:"web_addr"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the JSON file given
// by -c or -config. Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ProviderURL, jc.ProviderURL)
	setString(&cfg.ProviderAPIKey, jc.ProviderAPIKey)
	setString(&cfg.ProfilesDSN, jc.ProfilesDSN)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setString(&cfg.BreachRangeURL, jc.BreachRangeURL)
	setString(&cfg.WebAddr, jc.WebAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
