package lib

import (
	"context"

	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// AutoMigrate runs all database migrations
func AutoMigrate(ctx context.Context, st store.Store, log logging.Logger) error {
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	log.Info(ctx, "database migration completed")
	return nil
}
