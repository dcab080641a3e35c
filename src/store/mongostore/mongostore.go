// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

const (
	usersCollection         = "users"
	connectionsCollection   = "connectionrequests"
	notificationsCollection = "notifications"
)

type Store struct {
	client        *mongo.Client
	db            *mongo.Database
	users         *UserRepository
	connections   *ConnectionRepository
	notifications *NotificationRepository
}

var _ store.Store = (*Store)(nil)

// Open connects to uri and uses the database named dbName.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return New(client, dbName), nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:        client,
		db:            db,
		users:         &UserRepository{db: db},
		connections:   &ConnectionRepository{coll: db.Collection(connectionsCollection)},
		notifications: &NotificationRepository{coll: db.Collection(notificationsCollection)},
	}
}

func (s *Store) Users() store.UserRepository                 { return s.users }
func (s *Store) Connections() store.ConnectionRepository     { return s.connections }
func (s *Store) Notifications() store.NotificationRepository { return s.notifications }

func (s *Store) Migrate(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
		connectionsCollection: {
			{Keys: bson.D{{Key: "pair_key", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
