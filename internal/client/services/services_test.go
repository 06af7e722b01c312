package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authdash/internal/client/config"
	"github.com/dmitrijs2005/authdash/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/authdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "cache.db")
	cfg.RequestTimeout = time.Second
	return cfg
}

func TestNew_ProviderProfilesByDefault(t *testing.T) {
	s, err := New(context.Background(), testConfig(t), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.IsType(t, &profiles.ProviderRepository{}, s.Profiles)
	assert.NotNil(t, s.Form)
	assert.NotNil(t, s.Dashboard)
	assert.NotNil(t, s.Oracle)
	assert.Len(t, s.dbs, 1)
}

func TestNew_PostgresProfilesWithDSN(t *testing.T) {
	orig := openProfiles
	t.Cleanup(func() { openProfiles = orig })

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	var gotDSN string
	openProfiles = func(ctx context.Context, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return mockDB, nil
	}

	cfg := testConfig(t)
	cfg.ProfilesDSN = "postgres://app@localhost/app"

	s, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, cfg.ProfilesDSN, gotDSN)
	assert.IsType(t, &profiles.PostgresRepository{}, s.Profiles)

	require.NoError(t, s.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_ProfileStoreErrorClosesSessionCache(t *testing.T) {
	orig := openProfiles
	t.Cleanup(func() { openProfiles = orig })
	openProfiles = func(ctx context.Context, dsn string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	cfg := testConfig(t)
	cfg.ProfilesDSN = "postgres://app@localhost/app"

	s, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNew_SessionCacheError(t *testing.T) {
	orig := initDatabase
	t.Cleanup(func() { initDatabase = orig })
	initDatabase = func(ctx context.Context, path string) (*sql.DB, error) {
		return nil, errors.New("read-only file system")
	}

	_, err := New(context.Background(), testConfig(t), logging.Discard())
	assert.ErrorContains(t, err, "init session cache")
}
