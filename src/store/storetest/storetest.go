// Package storetest provides an in-memory SQLite store for tests and a
// contract suite every store backend must pass.
package storetest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	_ "modernc.org/sqlite"

	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
	"github.com/theleywin/Backend-DevTinder/src/store/sqlstore"
)

var dbSeq atomic.Int64

// NewSQLite returns a migrated store backed by a private in-memory SQLite
// database opened through the pure-Go driver. It is closed with the test.
func NewSQLite(t testing.TB) *sqlstore.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:devtinder_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	st, err := sqlstore.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn})
	require.NoError(t, err)

	sqlDB, err := st.DB().DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// Base is the creation time the seed helpers count from.
var Base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// SeedUser inserts a user created n minutes after Base.
func SeedUser(t testing.TB, st store.Store, name string, n int) *models.User {
	t.Helper()
	u := &models.User{
		FirstName: name,
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "hash",
		Age:       25,
		Gender:    "other",
		PhotoURL:  models.DefaultPhotoURL,
		Skills:    []string{"go"},
		CreatedAt: Base.Add(time.Duration(n) * time.Minute),
	}
	require.NoError(t, st.Users().Create(context.Background(), u))
	return u
}

// SeedRequest inserts a request with the given status created n minutes
// after Base.
func SeedRequest(t testing.TB, st store.Store, from, to string, status models.ConnectionStatus, n int) *models.ConnectionRequest {
	t.Helper()
	r := &models.ConnectionRequest{
		SenderID:   from,
		ReceiverID: to,
		Status:     status,
		CreatedAt:  Base.Add(time.Duration(n) * time.Minute),
	}
	require.NoError(t, st.Connections().Create(context.Background(), r))
	return r
}
