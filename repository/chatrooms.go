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

func (r *Repository) CreateChatRoom(ctx context.Context, room *models.ChatRoom) error {
	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
	}
	room.IsActive = true
	room.CreatedAt = time.Now().Unix()
	_, err := r.chatRooms.InsertOne(ctx, room)
	return err
}

func (r *Repository) FindRoomByID(ctx context.Context, id primitive.ObjectID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.chatRooms.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindRoomByConnection supports the get-or-create path: a connection's room
// can be looked up even when the backfilled chatRoomId is missing.
func (r *Repository) FindRoomByConnection(ctx context.Context, connID primitive.ObjectID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.chatRooms.FindOne(ctx, bson.M{"connectionId": connID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) ListRoomsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChatRoom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := r.chatRooms.Find(ctx, bson.M{
		"participants": userID,
		"isActive":     true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []models.ChatRoom
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// RecordMessage updates room metadata for a new message: last-message
// pointers plus an unread increment for the receiver, in one update.
func (r *Repository) RecordMessage(ctx context.Context, roomID, messageID, receiverID primitive.ObjectID) error {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.userId": receiverID}},
	})
	_, err := r.chatRooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$set": bson.M{
				"lastMessageAt": time.Now().Unix(),
				"lastMessageId": messageID,
			},
			"$inc": bson.M{"unreadCounts.$[elem].count": 1},
		},
		opts,
	)
	return err
}

// ResetUnread zeroes the caller's unread counter.
func (r *Repository) ResetUnread(ctx context.Context, roomID, userID primitive.ObjectID) error {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.userId": userID}},
	})
	_, err := r.chatRooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$set": bson.M{"unreadCounts.$[elem].count": 0}},
		opts,
	)
	return err
}

// ArchiveRoom soft-archives; the room and its messages are kept.
func (r *Repository) ArchiveRoom(ctx context.Context, roomID primitive.ObjectID) error {
	_, err := r.chatRooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$set": bson.M{"isActive": false}})
	return err
}

func (r *Repository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now().Unix()
	_, err := r.messages.InsertOne(ctx, msg)
	return err
}

func (r *Repository) ListMessagesByRoom(ctx context.Context, roomID primitive.ObjectID, limit int) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.messages.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
