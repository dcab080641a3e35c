package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID            string           `json:"_id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	RecipientID   string           `json:"recipient" gorm:"type:varchar(36);index;not null" bson:"recipient_id"`
	Type          NotificationType `json:"type" gorm:"type:varchar(30)" bson:"type"`
	RelatedUserID string           `json:"relatedUserId,omitempty" gorm:"type:varchar(36);index" bson:"related_user_id,omitempty"`
	Read          bool             `json:"read" bson:"read"`
	CreatedAt     time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updated_at"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

type NotificationType string

const (
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
)

// NotificationDto is a notification with the related user resolved.
type NotificationDto struct {
	ID          string           `json:"_id"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
	RelatedUser *PublicProfile   `json:"relatedUser,omitempty"`
}
