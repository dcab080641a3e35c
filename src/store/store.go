// Package store declares the persistence contracts of the API. The sqlstore
// (GORM over SQLite or PostgreSQL) and mongostore packages implement them.
//
// Repositories return common.ErrNotFound and common.ErrConflict for the
// conditions they can detect; anything else is a wrapped driver error.
package store

import (
	"context"

	"github.com/theleywin/Backend-DevTinder/src/models"
)

type UserRepository interface {
	// Create inserts u. A taken e-mail yields common.ErrConflict.
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// Update saves every profile field of u.
	Update(ctx context.Context, u *models.User) error
	// Delete removes the user together with every connection request and
	// notification that references them.
	Delete(ctx context.Context, id string) error
	// ListDiscoverable pages through every user other than viewerID who shares
	// no connection request with viewerID, whatever its status, ordered by
	// creation time and then id.
	ListDiscoverable(ctx context.Context, viewerID string, offset, limit int) ([]models.User, error)
}

type ConnectionRepository interface {
	// Create inserts a request. Any existing record for the same unordered
	// pair yields common.ErrConflict.
	Create(ctx context.Context, r *models.ConnectionRequest) error
	FindByID(ctx context.Context, id string) (*models.ConnectionRequest, error)
	// FindBetween returns the record linking a and b in either direction.
	FindBetween(ctx context.Context, a, b string) (*models.ConnectionRequest, error)
	// Respond moves a pending request addressed to receiverID to status in a
	// single conditional write. common.ErrNotFound covers a missing request,
	// a different receiver and a request that is no longer pending.
	Respond(ctx context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error)
	// ListByReceiver and ListBySender return newest first.
	ListByReceiver(ctx context.Context, receiverID string, statuses []string) ([]models.ConnectionRequest, error)
	ListBySender(ctx context.Context, senderID string, statuses []string) ([]models.ConnectionRequest, error)
	// ListAccepted returns accepted records involving userID, oldest first.
	ListAccepted(ctx context.Context, userID string) ([]models.ConnectionRequest, error)
	// ListInvolving returns every record involving userID, any status.
	ListInvolving(ctx context.Context, userID string) ([]models.ConnectionRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListByRecipient returns newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error)
	Delete(ctx context.Context, id, recipientID string) error
}

// Store groups the repositories of one backend.
type Store interface {
	Users() UserRepository
	Connections() ConnectionRepository
	Notifications() NotificationRepository
	// Migrate creates tables/collections and the indexes the repositories
	// rely on, including the unique pair key.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
