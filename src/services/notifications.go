package services

import (
	"context"

	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

type NotificationService struct {
	notes store.NotificationRepository
	users store.UserRepository
	log   logging.Logger
}

func NewNotificationService(notes store.NotificationRepository, users store.UserRepository, log logging.Logger) *NotificationService {
	return &NotificationService{notes: notes, users: users, log: log.With("module", "notifications")}
}

var _ AcceptanceNotifier = (*NotificationService)(nil)

func (s *NotificationService) NotifyConnectionAccepted(ctx context.Context, recipientID, acceptedByID string) error {
	n := &models.Notification{
		RecipientID:   recipientID,
		Type:          models.NotificationTypeConnectionAccepted,
		RelatedUserID: acceptedByID,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return unexpected("create notification", err)
	}
	return nil
}

// List returns the recipient's notifications, newest first, with the
// related user's profile when that user still exists.
func (s *NotificationService) List(ctx context.Context, recipientID string) ([]models.NotificationDto, error) {
	notes, err := s.notes.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, unexpected("list notifications", err)
	}

	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.RelatedUserID != "" {
			ids = append(ids, n.RelatedUserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, unexpected("load related users", err)
	}
	byID := make(map[string]models.PublicProfile, len(users))
	for _, u := range users {
		byID[u.ID] = u.Public()
	}

	out := make([]models.NotificationDto, 0, len(notes))
	for _, n := range notes {
		dto := models.NotificationDto{ID: n.ID, Type: n.Type, Read: n.Read, CreatedAt: n.CreatedAt}
		if p, ok := byID[n.RelatedUserID]; ok {
			dto.RelatedUser = &p
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	n, err := s.notes.MarkRead(ctx, id, recipientID)
	if err != nil {
		return nil, lookupErr("mark notification read", err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, recipientID string) error {
	if err := s.notes.Delete(ctx, id, recipientID); err != nil {
		return lookupErr("delete notification", err)
	}
	s.log.Debug(ctx, "notification deleted", "notification_id", id)
	return nil
}
