package lib

import (
	"context"
	"fmt"

	"github.com/theleywin/Backend-DevTinder/src/config"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/store"
	"github.com/theleywin/Backend-DevTinder/src/store/mongostore"
	"github.com/theleywin/Backend-DevTinder/src/store/sqlstore"
)

// ConnectDB opens the store backend selected by cfg.Driver and checks it
// answers.
func ConnectDB(ctx context.Context, cfg config.Database, log logging.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		st, err = sqlstore.OpenSQLite(cfg.DSN)
	case config.DriverPostgres:
		st, err = sqlstore.OpenPostgres(cfg.DSN)
	case config.DriverMongo:
		st, err = mongostore.Open(ctx, cfg.DSN, cfg.Name)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Ping(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Info(ctx, "connected to database", "driver", cfg.Driver)
	return st, nil
}
