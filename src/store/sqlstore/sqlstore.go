// Package sqlstore implements the store contracts with GORM over SQLite or
// PostgreSQL.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

type Store struct {
	db            *gorm.DB
	users         *UserRepository
	connections   *ConnectionRepository
	notifications *NotificationRepository
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		users:         &UserRepository{db: db},
		connections:   &ConnectionRepository{db: db},
		notifications: &NotificationRepository{db: db},
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// OpenSQLite opens the SQLite database at path.
func OpenSQLite(path string) (*Store, error) {
	return Open(sqlite.Open(path))
}

// OpenPostgres opens a PostgreSQL database through pgx.
func OpenPostgres(dsn string) (*Store, error) {
	return Open(postgres.Open(dsn))
}

func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db), nil
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() store.UserRepository                 { return s.users }
func (s *Store) Connections() store.ConnectionRepository     { return s.connections }
func (s *Store) Notifications() store.NotificationRepository { return s.notifications }

func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.ConnectionRequest{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation covers translated errors and the raw messages of drivers
// GORM cannot translate (the pure-Go SQLite driver among them).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
