// Package config handles configuration for the API server: defaults, an
// optional YAML file, the environment (including a .env file) and finally
// command-line flags, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds runtime settings for the DevTinder API.
//
// Fields:
//   - Port: HTTP listen port.
//   - DB: store backend selection; DSN is a file path for sqlite, a pgx DSN
//     for postgres and a connection URI for mongo.
//   - JWTSecret / TokenTTL: HS256 signing key and token lifetime.
//   - BcryptCost: work factor for password hashes.
//   - CORSOrigins: comma separated list of allowed origins.
//   - RequestTimeout: deadline applied to every store call of a request.
//   - AuthRateLimit: signup/login requests allowed per IP per minute.
type Config struct {
	Port           string        `yaml:"port"`
	DB             Database      `yaml:"database"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	CORSOrigins    string        `yaml:"cors_origins"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	AuthRateLimit  int           `yaml:"auth_rate_limit"`
	AutoMigrate    bool          `yaml:"auto_migrate"`
	SecureCookie   bool          `yaml:"secure_cookie"`
}

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Name   string `yaml:"name"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the JWT secret must be overridden outside local runs.
func (c *Config) LoadDefaults() {
	c.Port = "3000"
	c.DB = Database{Driver: DriverSQLite, DSN: "./devtinder.db", Name: "devtinder"}
	c.JWTSecret = "fallback-secret-key"
	c.TokenTTL = 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.CORSOrigins = "http://localhost:5173"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.RequestTimeout = 5 * time.Second
	c.AuthRateLimit = 10
	c.AutoMigrate = true
	c.SecureCookie = false
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the environment and the flags in fs that were set
// explicitly. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := loadYAML(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, osLookup); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DB.Driver))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.DB.Driver == DriverMongo && c.DB.Name == "" {
		errs = append(errs, errors.New("database name is required for mongo"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.AuthRateLimit <= 0 {
		errs = append(errs, errors.New("auth rate limit must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
