package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags declares the server flags on fs. Their defaults are only
// shown in help output: Load applies a flag only when it was set.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.String("port", d.Port, "HTTP listen port")
	fs.String("db-driver", d.DB.Driver, "store backend: sqlite, postgres or mongo")
	fs.String("db-dsn", d.DB.DSN, "sqlite file, postgres DSN or mongo URI")
	fs.String("db-name", d.DB.Name, "mongo database name")
	fs.String("jwt-secret", "", "HS256 signing secret")
	fs.Duration("jwt-ttl", d.TokenTTL, "token lifetime")
	fs.String("log-level", d.LogLevel, "log level")
	fs.String("log-format", d.LogFormat, "log format: json or text")
	fs.Duration("request-timeout", d.RequestTimeout, "per request store deadline")
	fs.Bool("auto-migrate", d.AutoMigrate, "migrate the schema on start")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	visit := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			err = apply()
		}
	}
	str := func(name string, dst *string) func() error {
		return func() (e error) { *dst, e = fs.GetString(name); return }
	}

	visit("port", str("port", &cfg.Port))
	visit("db-driver", str("db-driver", &cfg.DB.Driver))
	visit("db-dsn", str("db-dsn", &cfg.DB.DSN))
	visit("db-name", str("db-name", &cfg.DB.Name))
	visit("jwt-secret", str("jwt-secret", &cfg.JWTSecret))
	visit("log-level", str("log-level", &cfg.LogLevel))
	visit("log-format", str("log-format", &cfg.LogFormat))
	visit("jwt-ttl", func() (e error) { cfg.TokenTTL, e = fs.GetDuration("jwt-ttl"); return })
	visit("request-timeout", func() (e error) { cfg.RequestTimeout, e = fs.GetDuration("request-timeout"); return })
	visit("auto-migrate", func() (e error) { cfg.AutoMigrate, e = fs.GetBool("auto-migrate"); return })
	return err
}
