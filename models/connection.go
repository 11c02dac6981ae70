package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Connection types.
const (
	ConnectionTypeCofounder = "cofounder"
	ConnectionTypeInvestor  = "investor"
)

type Connection struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants         []primitive.ObjectID `bson:"participants" json:"participants"`
	Type                 string               `bson:"type" json:"type"` // cofounder, investor
	ChatRoomID           primitive.ObjectID   `bson:"chatRoomId,omitempty" json:"chatRoomId,omitempty"`
	CreatedFromRequestID primitive.ObjectID   `bson:"createdFromRequestId,omitempty" json:"createdFromRequestId,omitempty"`
	LastInteractionAt    int64                `bson:"lastInteractionAt,omitempty" json:"lastInteractionAt,omitempty"`
	LastMessageSnippet   string               `bson:"lastMessageSnippet,omitempty" json:"lastMessageSnippet,omitempty"`
	CreatedAt            int64                `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// HasParticipant reports whether userID is one of the connection's two
// participants.
func (c *Connection) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ConnectionTypeForRequest maps a match request type to the connection type
// created on accept. Both investor directions collapse to "investor".
func ConnectionTypeForRequest(requestType string) (string, bool) {
	switch requestType {
	case RequestTypeCofounder:
		return ConnectionTypeCofounder, true
	case RequestTypeFounderToInvestor, RequestTypeInvestorToFounder:
		return ConnectionTypeInvestor, true
	default:
		return "", false
	}
}
