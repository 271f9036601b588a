package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "petrealm.db", cfg.Storage.Path)
	assert.Equal(t, int64(64), cfg.Dispatch.Workers)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
port: "9090"
log:
  level: debug
storage:
  driver: sqlite
  path: /tmp/from-file.db
  schema_version: 1
`)
	t.Setenv("DB_PATH", "/tmp/from-env.db")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/from-env.db", cfg.Storage.Path)
	assert.Equal(t, int64(1), cfg.Storage.SchemaVersion)
}

func TestLoad_DSNWithoutDriverMeansPostgres(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@localhost/pets")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@localhost/pets", cfg.Storage.DSN)
}

func TestLoad_ExplicitDriverWinsOverDSN(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@localhost/pets")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_FileDSNMeansPostgres(t *testing.T) {
	path := writeFile(t, "storage:\n  dsn: postgres://u:p@localhost/pets\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_DRIVER", "realm")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestValidate_PostgresNeedsDSN(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = DriverPostgres

	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
