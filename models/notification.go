package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification types.
const (
	NotifMatchRequestReceived = "match_request_received"
	NotifMatchRequestAccepted = "match_request_accepted"
	NotifMatchRequestRejected = "match_request_rejected"
	NotifNewMessage           = "new_message"
	NotifConnectionCreated    = "connection_created"
	NotifSystem               = "system"
)

// Entity types a notification can point at.
const (
	EntityMatchRequest = "MatchRequest"
	EntityConnection   = "Connection"
	EntityChatRoom     = "ChatRoom"
	EntityMessage      = "Message"
)

type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	FromUserID primitive.ObjectID `bson:"fromUserId,omitempty" json:"fromUserId,omitempty"`
	Type       string             `bson:"type" json:"type"`
	EntityID   primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
	EntityType string             `bson:"entityType,omitempty" json:"entityType,omitempty"`
	Message    string             `bson:"message" json:"message"`
	IsRead     bool               `bson:"isRead" json:"isRead"`
	CreatedAt  int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
