package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return wrap("create notification", r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	out := []models.Notification{}
	err := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, wrap("list notifications", err)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Notification{}).
			Where("id = ? AND recipient_id = ?", id, recipientID).
			Update("read", true)
		if res.Error != nil {
			return wrap("mark notification read", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound
		}
		return wrap("reload notification", tx.First(&n, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return wrap("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
