package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"authapp/config"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestBuildDSN(t *testing.T) {
	pgCfg := &config.PostgresConfig{Database: "auth", SSLMode: "require"}

	dsn := buildDSN(pgCfg, "db.internal", "5432", "app", "p@ss:word/1")

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/auth", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))

	password, _ := parsed.User.Password()
	assert.Equal(t, "app", parsed.User.Username())
	assert.Equal(t, "p@ss:word/1", password)
}

func TestBuildDSN_DefaultSSLMode(t *testing.T) {
	dsn := buildDSN(&config.PostgresConfig{Database: "auth"}, "localhost", "5432", "app", "secret")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRunMigrations_UsesEmbeddedRoot(t *testing.T) {
	original := gooseUpContext
	t.Cleanup(func() { gooseUpContext = original })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir

		return nil
	}

	require.NoError(t, runMigrations(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := runMigrations(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migrations")
}

func TestGormSlogLogger_DoesNotRenderBoundValues(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = true

	l := newGormSlogLogger(base, cfg).(*gormSlogLogger)

	sql, vars := l.ParamsFilter(context.Background(), "INSERT INTO users VALUES ($1)", "deadbeef:cafebabe")
	assert.Equal(t, "INSERT INTO users VALUES ($1)", sql)
	assert.Empty(t, vars)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return sql, 1 }, nil)
	assert.Contains(t, buf.String(), "GORM query")
	assert.NotContains(t, buf.String(), "deadbeef")
}

func TestGormSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := newGormSlogLogger(base, &config.Config{})
	l.Info(context.Background(), "hidden %d", 1)
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	l.LogMode(logger.Silent).Error(context.Background(), "silenced")
	assert.Zero(t, buf.Len())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("query failed"))
	assert.Contains(t, buf.String(), "GORM query failed")
}
