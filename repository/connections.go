package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturelink/models"
)

func (r *Repository) CreateConnection(ctx context.Context, conn *models.Connection) error {
	if conn.ID.IsZero() {
		conn.ID = primitive.NewObjectID()
	}
	now := time.Now().Unix()
	conn.CreatedAt = now
	conn.LastInteractionAt = now
	_, err := r.connections.InsertOne(ctx, conn)
	return err
}

// SetConnectionChatRoom backfills the chat room reference after the room is
// provisioned.
func (r *Repository) SetConnectionChatRoom(ctx context.Context, connID, roomID primitive.ObjectID) error {
	_, err := r.connections.UpdateOne(ctx,
		bson.M{"_id": connID},
		bson.M{"$set": bson.M{"chatRoomId": roomID}})
	return err
}

func (r *Repository) FindConnectionByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.connections.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *Repository) ListConnectionsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastInteractionAt", Value: -1}})
	cursor, err := r.connections.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conns []models.Connection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// TouchConnection refreshes interaction metadata when a message is sent.
func (r *Repository) TouchConnection(ctx context.Context, id primitive.ObjectID, snippet string) error {
	_, err := r.connections.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"lastInteractionAt":  time.Now().Unix(),
			"lastMessageSnippet": snippet,
		}})
	return err
}
