package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type lookupFunc func(key string) (string, bool)

var osLookup lookupFunc = os.LookupEnv

// loadDotEnv exports the variables of a .env file. Variables already set in
// the process environment win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("DB_DRIVER", &cfg.DB.Driver)
	// DB_PATH names the SQLite file; DB_DSN wins when both are set.
	if v, ok := lookup("DB_DSN"); ok && v != "" {
		cfg.DB.DSN = v
	} else {
		str("DB_PATH", &cfg.DB.DSN)
	}
	str("DB_NAME", &cfg.DB.Name)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("CORS_ORIGINS", &cfg.CORSOrigins)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	var errs []error
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	duration("JWT_TTL", &cfg.TokenTTL)
	duration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	integer("BCRYPT_COST", &cfg.BcryptCost)
	integer("AUTH_RATE_LIMIT", &cfg.AuthRateLimit)
	boolean("AUTO_MIGRATE", &cfg.AutoMigrate)
	boolean("SECURE_COOKIE", &cfg.SecureCookie)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return nil
}
