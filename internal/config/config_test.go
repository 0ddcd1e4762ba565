package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
dbname = "barbersched_booking"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "main", cfg.DefaultTenant)
	assert.Equal(t, 10, cfg.Holds.TTLMinutes)
	assert.Equal(t, "*/5 * * * *", cfg.Holds.CleanupSchedule)
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
default_tenant = "main"

[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "bookings"
sslmode = "require"

[holds]
ttl_minutes = 15

[[tenants]]
slug = "downtown"
  [tenants.database]
  host = "db.internal"
  dbname = "bookings_downtown"
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 15, cfg.Holds.TTLMinutes)

	require.Len(t, cfg.Tenants, 1)
	assert.Equal(t, "downtown", cfg.Tenants[0].Slug)
	assert.Equal(t, "bookings_downtown", cfg.Tenants[0].Database.DBName)
}

func TestLoad_RequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "localhost"
`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
[database]
dbname = "bookings"
`))
	assert.Error(t, err)
}

func TestLoad_DuplicateTenantSlug(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[[tenants]]
slug = "main"
  [tenants.database]
  host = "localhost"
  dbname = "other"
`))
	assert.Error(t, err)
}

func TestLoad_TenantDatabaseRequired(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[[tenants]]
slug = "downtown"
`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "bookings",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=bookings sslmode=disable",
		d.DSN())
}
