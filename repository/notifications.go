package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturelink/errs"
	"venturelink/models"
)

func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now().Unix()
	_, err := r.notifications.InsertOne(ctx, n)
	return err
}

func (r *Repository) ListNotifications(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.notifications.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifs []models.Notification
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkNotificationRead is scoped to the owner so users cannot touch each
// other's notifications.
func (r *Repository) MarkNotificationRead(ctx context.Context, id, userID primitive.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.notifications.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}},
		opts,
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFound("notification not found")
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.notifications.UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}})
	return err
}
