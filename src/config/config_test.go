package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, DriverSQLite, c.DB.Driver)
	assert.Equal(t, "./devtinder.db", c.DB.DSN)
	assert.Equal(t, "fallback-secret-key", c.JWTSecret)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.AuthRateLimit)
	assert.True(t, c.AutoMigrate)
	require.NoError(t, c.Validate())
}

func TestLoadYAML_OverlaysOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"8080\"\ndatabase:\n  driver: postgres\n  dsn: postgres://u:p@localhost/devtinder\ntoken_ttl: 2h\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var c Config
	c.LoadDefaults()
	require.NoError(t, loadYAML(&c, path))

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, DriverPostgres, c.DB.Driver)
	assert.Equal(t, "postgres://u:p@localhost/devtinder", c.DB.DSN)
	assert.Equal(t, "devtinder", c.DB.Name)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, "fallback-secret-key", c.JWTSecret)
}

func TestLoadYAML_MissingFile(t *testing.T) {
	var c Config
	err := loadYAML(&c, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":            "4000",
		"DB_PATH":         "/tmp/dev.db",
		"JWT_SECRET":      "s3cret",
		"JWT_TTL":         "90m",
		"BCRYPT_COST":     "12",
		"AUTO_MIGRATE":    "false",
		"REQUEST_TIMEOUT": "",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	var c Config
	c.LoadDefaults()
	require.NoError(t, applyEnv(&c, lookup))

	assert.Equal(t, "4000", c.Port)
	assert.Equal(t, "/tmp/dev.db", c.DB.DSN)
	assert.Equal(t, "s3cret", c.JWTSecret)
	assert.Equal(t, 90*time.Minute, c.TokenTTL)
	assert.Equal(t, 12, c.BcryptCost)
	assert.False(t, c.AutoMigrate)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestApplyEnv_DSNWinsOverPath(t *testing.T) {
	for _, env := range []map[string]string{
		{"DB_PATH": "/tmp/dev.db", "DB_DSN": "file:other.db"},
		{"DB_DSN": "file:other.db", "DB_PATH": "/tmp/dev.db"},
	} {
		lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
		var c Config
		c.LoadDefaults()
		require.NoError(t, applyEnv(&c, lookup))
		assert.Equal(t, "file:other.db", c.DB.DSN)
	}

	env := map[string]string{"DB_PATH": "/tmp/dev.db", "DB_DSN": ""}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	var c Config
	c.LoadDefaults()
	require.NoError(t, applyEnv(&c, lookup))
	assert.Equal(t, "/tmp/dev.db", c.DB.DSN)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	env := map[string]string{"JWT_TTL": "soon", "BCRYPT_COST": "many"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	var c Config
	c.LoadDefaults()
	err := applyEnv(&c, lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TTL")
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestApplyFlags_OnlyChangedFlagsWin(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--port=9000", "--db-driver=mongo", "--request-timeout=1s"}))

	var c Config
	c.LoadDefaults()
	c.LogLevel = "debug"
	require.NoError(t, applyFlags(&c, fs))

	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, DriverMongo, c.DB.Driver)
	assert.Equal(t, time.Second, c.RequestTimeout)
	assert.Equal(t, "debug", c.LogLevel, "unset flags must not reset earlier layers")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }},
		{"empty dsn", func(c *Config) { c.DB.DSN = "" }},
		{"mongo without name", func(c *Config) { c.DB.Driver = DriverMongo; c.DB.Name = "" }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 99 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero rate limit", func(c *Config) { c.AuthRateLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
