package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return wrap("create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrap("find user", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, wrap("find user by email", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrap("find users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).Model(u).
		Select("first_name", "last_name", "email", "password", "age", "gender",
			"photo_url", "bio", "skills", "updated_at").
		Updates(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return wrap("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).
			Delete(&models.ConnectionRequest{}).Error; err != nil {
			return wrap("delete user requests", err)
		}
		if err := tx.Where("recipient_id = ? OR related_user_id = ?", id, id).
			Delete(&models.Notification{}).Error; err != nil {
			return wrap("delete user notifications", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return wrap("delete user", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

// ListDiscoverable resolves counterparties with subqueries; no bind
// parameter is emitted per excluded id.
func (r *UserRepository) ListDiscoverable(ctx context.Context, viewerID string, offset, limit int) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	sent := db.Model(&models.ConnectionRequest{}).Select("receiver_id").Where("sender_id = ?", viewerID)
	received := db.Model(&models.ConnectionRequest{}).Select("sender_id").Where("receiver_id = ?", viewerID)

	users := []models.User{}
	err := db.Model(&models.User{}).
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", sent).
		Where("id NOT IN (?)", received).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, wrap("list users", err)
	}
	return users, nil
}
