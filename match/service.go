// Package match implements the match request lifecycle: a pending request
// either gets accepted (creating a connection and its chat room), rejected,
// or cancelled by the sender. All transitions out of pending are atomic
// single-document updates, so concurrent responders cannot double-apply the
// accept side effects.
package match

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"venturelink/errs"
	"venturelink/metrics"
	"venturelink/models"
)

// Responder actions.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Store is the slice of the repository the lifecycle needs.
type Store interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindRequestByID(ctx context.Context, id primitive.ObjectID) (*models.MatchRequest, error)
	FindPendingRequest(ctx context.Context, from, to primitive.ObjectID) (*models.MatchRequest, error)
	CreateRequest(ctx context.Context, req *models.MatchRequest) error
	TransitionRequest(ctx context.Context, id primitive.ObjectID, newStatus string) (*models.MatchRequest, error)
	CreateConnection(ctx context.Context, conn *models.Connection) error
	CreateChatRoom(ctx context.Context, room *models.ChatRoom) error
	SetConnectionChatRoom(ctx context.Context, connID, roomID primitive.ObjectID) error
}

// Notifier delivers notifications best effort; implementations must not
// return delivery failures to us.
type Notifier interface {
	Send(ctx context.Context, n *models.Notification)
}

type Service struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
}

func NewService(store Store, notifier Notifier, log *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, log: log}
}

// Create sends a match request. The request type is derived from the two
// users' roles; only one pending request per ordered (from,to) pair may
// exist at a time.
func (s *Service) Create(ctx context.Context, fromID, toID primitive.ObjectID, message string, matchScore *int) (*models.MatchRequest, error) {
	if fromID == toID {
		return nil, errs.InvalidState("cannot send a match request to yourself")
	}

	fromUser, err := s.store.FindUserByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if fromUser == nil {
		return nil, errs.NotFound("sender not found")
	}

	toUser, err := s.store.FindUserByID(ctx, toID)
	if err != nil {
		return nil, err
	}
	if toUser == nil {
		return nil, errs.NotFound("receiver not found")
	}

	reqType, ok := models.DeriveRequestType(fromUser.Role, toUser.Role)
	if !ok {
		return nil, errs.InvalidState("no valid request type for roles %q and %q", fromUser.Role, toUser.Role)
	}

	existing, err := s.store.FindPendingRequest(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("match request already sent")
	}

	req := &models.MatchRequest{
		From:       fromID,
		To:         toID,
		Type:       reqType,
		Message:    message,
		MatchScore: matchScore,
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.notifier.Send(ctx, &models.Notification{
		UserID:     toID,
		FromUserID: fromID,
		Type:       models.NotifMatchRequestReceived,
		EntityID:   req.ID,
		EntityType: models.EntityMatchRequest,
		Message:    fmt.Sprintf("%s sent you a match request", fromUser.FullName),
	})

	metrics.MatchRequestTransitions.WithLabelValues("created").Inc()
	return req, nil
}

// Respond lets the receiver accept or reject a pending request. Accepting
// creates the connection and chat room exactly once; a second responder, or
// a response to an already processed request, gets a Conflict.
func (s *Service) Respond(ctx context.Context, requestID, actingUserID primitive.ObjectID, action string) (*models.Connection, error) {
	var newStatus string
	switch action {
	case ActionAccept:
		newStatus = models.RequestStatusAccepted
	case ActionReject:
		newStatus = models.RequestStatusRejected
	default:
		return nil, errs.InvalidState("invalid action %q", action)
	}

	req, err := s.store.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errs.NotFound("match request not found")
	}
	if req.To != actingUserID {
		return nil, errs.Forbidden("only the receiver can respond to a match request")
	}
	if req.Status != models.RequestStatusPending {
		return nil, errs.Conflict("request already processed")
	}

	// The pending-only guard inside TransitionRequest is what actually
	// decides the winner under concurrency; the checks above only produce
	// better errors for the common cases.
	updated, err := s.store.TransitionRequest(ctx, requestID, newStatus)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.Conflict("request already processed")
	}

	if action == ActionReject {
		s.notifier.Send(ctx, &models.Notification{
			UserID:     updated.From,
			FromUserID: updated.To,
			Type:       models.NotifMatchRequestRejected,
			EntityID:   updated.ID,
			EntityType: models.EntityMatchRequest,
			Message:    "Your match request was rejected",
		})
		metrics.MatchRequestTransitions.WithLabelValues("rejected").Inc()
		return nil, nil
	}

	return s.acceptSideEffects(ctx, updated)
}

// acceptSideEffects runs the connection / chat room / notification chain for
// a request that just transitioned to accepted. The connection record is the
// source of truth; chat room and notification failures are logged, not
// rolled back (a missing room is recreated lazily by the chat service).
func (s *Service) acceptSideEffects(ctx context.Context, req *models.MatchRequest) (*models.Connection, error) {
	connType, ok := models.ConnectionTypeForRequest(req.Type)
	if !ok {
		return nil, errs.InvalidState("no connection type for request type %q", req.Type)
	}

	conn := &models.Connection{
		Participants:         []primitive.ObjectID{req.From, req.To},
		Type:                 connType,
		CreatedFromRequestID: req.ID,
	}
	if err := s.store.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}
	metrics.ConnectionsCreated.WithLabelValues(connType).Inc()

	room := &models.ChatRoom{
		ConnectionID: conn.ID,
		Participants: conn.Participants,
		UnreadCounts: []models.UnreadCount{
			{UserID: req.From, Count: 0},
			{UserID: req.To, Count: 0},
		},
	}
	if err := s.store.CreateChatRoom(ctx, room); err != nil {
		s.log.Error("chat room creation failed after accept",
			zap.String("connectionId", conn.ID.Hex()),
			zap.Error(err))
	} else {
		if err := s.store.SetConnectionChatRoom(ctx, conn.ID, room.ID); err != nil {
			s.log.Error("chat room backfill failed",
				zap.String("connectionId", conn.ID.Hex()),
				zap.Error(err))
		} else {
			conn.ChatRoomID = room.ID
		}
	}

	s.notifier.Send(ctx, &models.Notification{
		UserID:     req.From,
		FromUserID: req.To,
		Type:       models.NotifMatchRequestAccepted,
		EntityID:   conn.ID,
		EntityType: models.EntityConnection,
		Message:    "Your match request was accepted",
	})
	s.notifier.Send(ctx, &models.Notification{
		UserID:     req.To,
		FromUserID: req.From,
		Type:       models.NotifConnectionCreated,
		EntityID:   conn.ID,
		EntityType: models.EntityConnection,
		Message:    "You are now connected",
	})

	metrics.MatchRequestTransitions.WithLabelValues("accepted").Inc()
	return conn, nil
}

// Cancel lets the sender withdraw a still-pending request. No notification
// is emitted.
func (s *Service) Cancel(ctx context.Context, requestID, actingUserID primitive.ObjectID) error {
	req, err := s.store.FindRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return errs.NotFound("match request not found")
	}
	if req.From != actingUserID {
		return errs.Forbidden("only the sender can cancel a match request")
	}

	updated, err := s.store.TransitionRequest(ctx, requestID, models.RequestStatusCancelled)
	if err != nil {
		return err
	}
	if updated == nil {
		return errs.Conflict("request already processed")
	}

	metrics.MatchRequestTransitions.WithLabelValues("cancelled").Inc()
	return nil
}
