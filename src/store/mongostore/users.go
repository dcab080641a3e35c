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

type UserRepository struct {
	db *mongo.Database
}

func (r *UserRepository) coll() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	u.UpdatedAt = now()
	if _, err := r.coll().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return wrap("create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.coll().FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, wrap("find user", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = now()
	set := bson.M{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"password":   u.Password,
		"age":        u.Age,
		"gender":     u.Gender,
		"photo_url":  u.PhotoURL,
		"bio":        u.Bio,
		"skills":     u.Skills,
		"updated_at": u.UpdatedAt,
	}
	res, err := r.coll().UpdateByID(ctx, u.ID, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return wrap("update user", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the user first so a concurrent request sees it gone, then
// the records that reference it. Standalone servers have no transactions.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap("delete user", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}

	_, err = r.db.Collection(connectionsCollection).DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"sender_id": id}, bson.M{"receiver_id": id},
	}})
	if err != nil {
		return wrap("delete user requests", err)
	}
	_, err = r.db.Collection(notificationsCollection).DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"recipient_id": id}, bson.M{"related_user_id": id},
	}})
	return wrap("delete user notifications", err)
}

func (r *UserRepository) ListDiscoverable(ctx context.Context, viewerID string, offset, limit int) ([]models.User, error) {
	conns := r.db.Collection(connectionsCollection)
	exclude := bson.A{viewerID}
	for _, side := range []struct{ field, by string }{
		{"receiver_id", "sender_id"},
		{"sender_id", "receiver_id"},
	} {
		ids, err := conns.Distinct(ctx, side.field, bson.M{side.by: viewerID})
		if err != nil {
			return nil, wrap("list related users", err)
		}
		exclude = append(exclude, ids...)
	}

	filter := bson.M{"_id": bson.M{"$nin": exclude}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cur, err := r.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap("list users", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, wrap("decode users", err)
	}
	return users, nil
}
