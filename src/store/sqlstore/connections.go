package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

type ConnectionRepository struct {
	db *gorm.DB
}

func (r *ConnectionRepository) Create(ctx context.Context, req *models.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: request already exists for this pair", common.ErrConflict)
		}
		return wrap("create connection request", err)
	}
	return nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, wrap("find connection request", err)
	}
	return &req, nil
}

func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b string) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := r.db.WithContext(ctx).First(&req, "pair_key = ?", models.PairKey(a, b)).Error
	if err != nil {
		return nil, wrap("find connection request", err)
	}
	return &req, nil
}

func (r *ConnectionRepository) Respond(ctx context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND receiver_id = ? AND status IN ?", id, receiverID, models.PendingStatuses()).
			Updates(map[string]any{"status": status, "updated_at": time.Now()})
		if res.Error != nil {
			return wrap("respond to connection request", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound
		}
		return wrap("reload connection request", tx.First(&req, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ConnectionRepository) ListByReceiver(ctx context.Context, receiverID string, statuses []string) ([]models.ConnectionRequest, error) {
	return r.list(ctx, "list received requests", "created_at DESC",
		"receiver_id = ? AND status IN ?", receiverID, statuses)
}

func (r *ConnectionRepository) ListBySender(ctx context.Context, senderID string, statuses []string) ([]models.ConnectionRequest, error) {
	return r.list(ctx, "list sent requests", "created_at DESC",
		"sender_id = ? AND status IN ?", senderID, statuses)
}

func (r *ConnectionRepository) ListAccepted(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	return r.list(ctx, "list connections", "created_at ASC",
		"(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, models.ConnectionStatusAccepted)
}

func (r *ConnectionRepository) ListInvolving(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	return r.list(ctx, "list user requests", "created_at ASC",
		"sender_id = ? OR receiver_id = ?", userID, userID)
}

func (r *ConnectionRepository) list(ctx context.Context, op, order, query string, args ...any) ([]models.ConnectionRequest, error) {
	out := []models.ConnectionRequest{}
	err := r.db.WithContext(ctx).Where(query, args...).Order(order).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}
