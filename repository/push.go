package repository

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PushSubscription stores a browser push endpoint for a user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

// SavePushSubscription upserts the subscription, one per user.
func (r *Repository) SavePushSubscription(ctx context.Context, userID primitive.ObjectID, sub webpush.Subscription) error {
	_, err := r.pushSubs.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"userId": userID, "sub": sub}},
		options.Update().SetUpsert(true),
	)
	return err
}

// FindPushSubscription returns nil without error when the user never
// subscribed.
func (r *Repository) FindPushSubscription(ctx context.Context, userID primitive.ObjectID) (*PushSubscription, error) {
	var sub PushSubscription
	err := r.pushSubs.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeletePushSubscription drops a dead endpoint, e.g. after a 410 from the
// push service.
func (r *Repository) DeletePushSubscription(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.pushSubs.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
