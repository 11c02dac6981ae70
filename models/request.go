package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Match request types, derived from the two participants' roles.
const (
	RequestTypeCofounder         = "cofounder"
	RequestTypeFounderToInvestor = "founder-to-investor"
	RequestTypeInvestorToFounder = "investor-to-founder"
)

// Match request statuses. Pending is the only non-terminal state.
const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
)

type MatchRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From        primitive.ObjectID `bson:"from" json:"from"`
	To          primitive.ObjectID `bson:"to" json:"to"`
	Type        string             `bson:"type" json:"type"`       // cofounder, founder-to-investor, investor-to-founder
	Status      string             `bson:"status" json:"status"`   // pending, accepted, rejected, cancelled
	Message     string             `bson:"message" json:"message"`
	MatchScore  *int               `bson:"matchScore,omitempty" json:"matchScore,omitempty"`
	RespondedAt int64              `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	CreatedAt   int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// DeriveRequestType maps a (sender role, receiver role) pair to a request
// type. ok is false for role pairs that cannot form a request
// (investor to investor, or a missing role).
func DeriveRequestType(fromRole, toRole string) (string, bool) {
	switch {
	case fromRole == RoleFounder && toRole == RoleFounder:
		return RequestTypeCofounder, true
	case fromRole == RoleFounder && toRole == RoleInvestor:
		return RequestTypeFounderToInvestor, true
	case fromRole == RoleInvestor && toRole == RoleFounder:
		return RequestTypeInvestorToFounder, true
	default:
		return "", false
	}
}
