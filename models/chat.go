package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UnreadCount struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Count  int                `bson:"count" json:"count"`
}

type ChatRoom struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ConnectionID  primitive.ObjectID   `bson:"connectionId" json:"connectionId"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessageAt int64                `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	LastMessageID primitive.ObjectID   `bson:"lastMessageId,omitempty" json:"lastMessageId,omitempty"`
	UnreadCounts  []UnreadCount        `bson:"unreadCounts" json:"unreadCounts"`
	IsActive      bool                 `bson:"isActive" json:"isActive"`
	CreatedAt     int64                `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// HasParticipant reports whether userID may read or write in this room.
func (r *ChatRoom) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range r.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Partner returns the other participant of a two-person room.
func (r *ChatRoom) Partner(userID primitive.ObjectID) primitive.ObjectID {
	for _, p := range r.Participants {
		if p != userID {
			return p
		}
	}
	return primitive.NilObjectID
}

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID    primitive.ObjectID `bson:"roomId" json:"roomId"`
	From      primitive.ObjectID `bson:"from" json:"from"`
	To        primitive.ObjectID `bson:"to" json:"to"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
