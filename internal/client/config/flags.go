package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/authdash/internal/flagx"
)

var ownFlags = []string{"-u", "-k", "-d", "-s", "-t", "-b", "-w", "-l"}

// parseFlags populates cfg from the command-line flags it owns; other
// flags are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("authdash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ProviderURL, "u", cfg.ProviderURL, "identity provider base URL")
	fs.StringVar(&cfg.ProviderAPIKey, "k", cfg.ProviderAPIKey, "provider public API key")
	fs.StringVar(&cfg.ProfilesDSN, "d", cfg.ProfilesDSN, "Postgres DSN of the profile store")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the session cache")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.BreachRangeURL, "b", cfg.BreachRangeURL, "breached-password range API URL")
	fs.StringVar(&cfg.WebAddr, "w", cfg.WebAddr, "web UI listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
