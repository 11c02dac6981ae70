package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role values. A user's role is fixed when their first profile is created.
const (
	RoleFounder  = "founder"
	RoleInvestor = "investor"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClerkID      string             `bson:"clerkId" json:"clerkId"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	FullName     string             `bson:"fullName" json:"fullName"`
	AvatarURL    string             `bson:"avatarUrl" json:"avatarUrl"`
	Role         string             `bson:"role" json:"role"` // founder, investor
	LastActivity int64              `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt    int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
