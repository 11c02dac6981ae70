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

func (r *Repository) FindRequestByID(ctx context.Context, id primitive.ObjectID) (*models.MatchRequest, error) {
	var req models.MatchRequest
	err := r.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPendingRequest looks for a live request for the ordered (from,to) pair.
func (r *Repository) FindPendingRequest(ctx context.Context, from, to primitive.ObjectID) (*models.MatchRequest, error) {
	var req models.MatchRequest
	err := r.requests.FindOne(ctx, bson.M{
		"from":   from,
		"to":     to,
		"status": models.RequestStatusPending,
	}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest inserts a new pending request. The partial unique index on
// (from,to,pending) turns a concurrent duplicate into a Conflict here.
func (r *Repository) CreateRequest(ctx context.Context, req *models.MatchRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.Status = models.RequestStatusPending
	req.CreatedAt = time.Now().Unix()

	if _, err := r.requests.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("match request already sent")
		}
		return err
	}
	return nil
}

// TransitionRequest atomically moves a request out of pending. The status
// guard in the filter is the sole concurrency control: of two concurrent
// responders exactly one gets the updated document back, the other gets
// (nil, nil).
func (r *Repository) TransitionRequest(ctx context.Context, id primitive.ObjectID, newStatus string) (*models.MatchRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req models.MatchRequest
	err := r.requests.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.RequestStatusPending},
		bson.M{"$set": bson.M{
			"status":      newStatus,
			"respondedAt": time.Now().Unix(),
		}},
		opts,
	).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListIncomingRequests returns the pending requests addressed to a user.
func (r *Repository) ListIncomingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.MatchRequest, error) {
	cursor, err := r.requests.Find(ctx, bson.M{
		"to":     userID,
		"status": models.RequestStatusPending,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.MatchRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListSentRequests returns every request a user has sent, any status.
func (r *Repository) ListSentRequests(ctx context.Context, userID primitive.ObjectID) ([]models.MatchRequest, error) {
	cursor, err := r.requests.Find(ctx, bson.M{"from": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.MatchRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}
