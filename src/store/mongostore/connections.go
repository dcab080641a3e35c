package mongostore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

type ConnectionRepository struct {
	coll *mongo.Collection
}

func (r *ConnectionRepository) Create(ctx context.Context, req *models.ConnectionRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = models.ConnectionStatusPending
	}
	req.PairKey = models.PairKey(req.SenderID, req.ReceiverID)
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now()
	}
	req.UpdatedAt = now()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: request already exists for this pair", common.ErrConflict)
		}
		return wrap("create connection request", err)
	}
	return nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*models.ConnectionRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b string) (*models.ConnectionRequest, error) {
	return r.findOne(ctx, bson.M{"pair_key": models.PairKey(a, b)})
}

func (r *ConnectionRepository) findOne(ctx context.Context, filter bson.M) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		return nil, wrap("find connection request", err)
	}
	return &req, nil
}

func (r *ConnectionRepository) Respond(ctx context.Context, id, receiverID string, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"_id":         id,
		"receiver_id": receiverID,
		"status":      bson.M{"$in": models.PendingStatuses()},
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ConnectionRequest
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req); err != nil {
		return nil, wrap("respond to connection request", err)
	}
	return &req, nil
}

func (r *ConnectionRepository) ListByReceiver(ctx context.Context, receiverID string, statuses []string) ([]models.ConnectionRequest, error) {
	return r.find(ctx, bson.M{"receiver_id": receiverID, "status": bson.M{"$in": statuses}}, -1)
}

func (r *ConnectionRepository) ListBySender(ctx context.Context, senderID string, statuses []string) ([]models.ConnectionRequest, error) {
	return r.find(ctx, bson.M{"sender_id": senderID, "status": bson.M{"$in": statuses}}, -1)
}

func (r *ConnectionRepository) ListAccepted(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	return r.find(ctx, bson.M{
		"$or":    bson.A{bson.M{"sender_id": userID}, bson.M{"receiver_id": userID}},
		"status": models.ConnectionStatusAccepted,
	}, 1)
}

func (r *ConnectionRepository) ListInvolving(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	return r.find(ctx, bson.M{
		"$or": bson.A{bson.M{"sender_id": userID}, bson.M{"receiver_id": userID}},
	}, 1)
}

// find sorts by created_at in the given direction, ties broken by _id.
func (r *ConnectionRepository) find(ctx context.Context, filter bson.M, dir int) ([]models.ConnectionRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap("list connection requests", err)
	}
	out := []models.ConnectionRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap("decode connection requests", err)
	}
	return out, nil
}
