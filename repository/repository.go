// Package repository holds the MongoDB persistence layer. One file per
// aggregate; all methods hang off a shared Repository so wiring stays in one
// place.
package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"venturelink/database"
)

type Repository struct {
	users         *mongo.Collection
	founders      *mongo.Collection
	investors     *mongo.Collection
	requests      *mongo.Collection
	connections   *mongo.Collection
	chatRooms     *mongo.Collection
	messages      *mongo.Collection
	notifications *mongo.Collection
	pushSubs      *mongo.Collection
}

// New returns a Repository bound to the globally connected collections.
// database.ConnectMongo must have been called first.
func New() *Repository {
	return &Repository{
		users:         database.Users,
		founders:      database.FounderProfiles,
		investors:     database.InvestorProfiles,
		requests:      database.MatchRequests,
		connections:   database.Connections,
		chatRooms:     database.ChatRooms,
		messages:      database.Messages,
		notifications: database.Notifications,
		pushSubs:      database.PushSubs,
	}
}
