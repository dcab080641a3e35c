package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionRequest struct {
	ID         string           `json:"_id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	SenderID   string           `json:"senderId" gorm:"type:varchar(36);index;not null" bson:"sender_id"`
	ReceiverID string           `json:"receiverId" gorm:"type:varchar(36);index;not null" bson:"receiver_id"`
	PairKey    string           `json:"-" gorm:"type:varchar(80);uniqueIndex;not null" bson:"pair_key"`
	Status     ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index" bson:"status"`
	CreatedAt  time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updated_at"`
}

// BeforeCreate fills the id and the canonical pair key.
func (r *ConnectionRequest) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.PairKey = PairKey(r.SenderID, r.ReceiverID)
	return nil
}

// CounterParty returns the id of the other user relative to userID.
func (r ConnectionRequest) CounterParty(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}

// PairKey is the direction-free key of a user pair: the lower id first.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
	ConnectionStatusIgnored  ConnectionStatus = "ignored"

	// Older records were written with "interested" as the initial state.
	connectionStatusInterested ConnectionStatus = "interested"
)

// PendingStatuses lists every stored value that means "pending".
func PendingStatuses() []string {
	return []string{string(ConnectionStatusPending), string(connectionStatusInterested)}
}

// Canonical folds legacy values onto the current status names.
func (s ConnectionStatus) Canonical() ConnectionStatus {
	if s == connectionStatusInterested {
		return ConnectionStatusPending
	}
	return s
}

func (s ConnectionStatus) IsPending() bool {
	return s.Canonical() == ConnectionStatusPending
}

// ParseDecision accepts only the statuses a receiver may answer with.
func ParseDecision(s string) (ConnectionStatus, bool) {
	switch ConnectionStatus(s) {
	case ConnectionStatusAccepted, ConnectionStatusRejected:
		return ConnectionStatus(s), true
	}
	return "", false
}

// PendingRequest is a received or sent pending request with the other
// party's profile attached.
type PendingRequest struct {
	ID        string        `json:"_id"`
	User      PublicProfile `json:"user"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// RelationState describes how the viewer relates to another user.
type RelationState string

const (
	RelationNone            RelationState = "none"
	RelationPendingSent     RelationState = "pending_sent"
	RelationPendingReceived RelationState = "pending_received"
	RelationAccepted        RelationState = "accepted"
	RelationRejected        RelationState = "rejected"
	RelationIgnored         RelationState = "ignored"
)

type Relation struct {
	State     RelationState `json:"status"`
	RequestID string        `json:"requestId,omitempty"`
}
