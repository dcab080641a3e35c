package mongostore

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

type NotificationRepository struct {
	coll *mongo.Collection
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now()
	}
	n.UpdatedAt = now()
	_, err := r.coll.InsertOne(ctx, n)
	return wrap("create notification", err)
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, wrap("list notifications", err)
	}
	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap("decode notifications", err)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true, "updated_at": now()}},
		opts,
	).Decode(&n)
	if err != nil {
		return nil, wrap("mark notification read", err)
	}
	return &n, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "recipient_id": recipientID})
	if err != nil {
		return wrap("delete notification", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
