package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"venturelink/models"
)

// FindUserByID returns nil without error when the user does not exist.
func (r *Repository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindUserByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().Unix()
	_, err := r.users.InsertOne(ctx, user)
	return err
}

// SetUserRole fixes the user's role when their first profile is created.
func (r *Repository) SetUserRole(ctx context.Context, id primitive.ObjectID, role string) error {
	_, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	return err
}

func (r *Repository) TouchUserActivity(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastActivity": time.Now().Unix()}})
	return err
}
