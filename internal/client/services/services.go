// Package services assembles the client's application services from a
// Config: the identity provider client with its SQLite session cache, the
// profile store, the strength oracle, the credential form and the
// dashboard. Both front ends (REPL and web UI) start from New.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/authdash/internal/client/authform"
	"github.com/dmitrijs2005/authdash/internal/client/config"
	"github.com/dmitrijs2005/authdash/internal/client/dashboard"
	"github.com/dmitrijs2005/authdash/internal/client/provider"
	"github.com/dmitrijs2005/authdash/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/authdash/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/authdash/internal/client/storage"
	"github.com/dmitrijs2005/authdash/internal/client/strength"
	"github.com/dmitrijs2005/authdash/internal/logging"
)

// initDatabase and openProfiles are seams for the storage openers.
var (
	initDatabase = storage.InitDatabase
	openProfiles = storage.OpenProfiles
)

type Services struct {
	Provider  *provider.HTTPProvider
	Profiles  profiles.Repository
	Oracle    strength.Oracle
	Form      *authform.Controller
	Dashboard *dashboard.Model

	dbs []*sql.DB
}

// New opens the databases named in cfg and wires the services. Close
// releases them.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Services, error) {
	s := &Services{}

	sessionDB, err := initDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("init session cache: %w", err)
	}
	s.dbs = append(s.dbs, sessionDB)

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	s.Provider = provider.NewHTTPProvider(cfg.ProviderURL, cfg.ProviderAPIKey, httpClient,
		sessions.NewSQLiteRepository(sessionDB), logger)

	if cfg.ProfilesDSN != "" {
		profilesDB, err := openProfiles(ctx, cfg.ProfilesDSN)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open profile store: %w", err)
		}
		s.dbs = append(s.dbs, profilesDB)
		s.Profiles = profiles.NewPostgresRepository(profilesDB)
		logger.Info(ctx, "profiles go to postgres")
	} else {
		s.Profiles = profiles.NewProviderRepository(s.Provider)
	}

	s.Oracle = strength.NewChecker(cfg.BreachRangeURL, httpClient)
	s.Form = authform.NewController(s.Provider, s.Profiles, s.Oracle, logger, cfg.RequestTimeout)
	s.Dashboard = dashboard.New(s.Provider, logger, cfg.RequestTimeout)

	return s, nil
}

func (s *Services) Close() error {
	var errs []error
	for _, db := range s.dbs {
		errs = append(errs, db.Close())
	}
	s.dbs = nil
	return errors.Join(errs...)
}
