// Package chat manages the 1:1 chat rooms provisioned for connections:
// room lookup with lazy creation, message sending with unread bookkeeping,
// and soft archival.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"venturelink/errs"
	"venturelink/metrics"
	"venturelink/models"
)

const (
	defaultPageSize = 50
	snippetMaxLen   = 500
)

// Store is the slice of the repository the chat service needs.
type Store interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindConnectionByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	TouchConnection(ctx context.Context, id primitive.ObjectID, snippet string) error
	FindRoomByID(ctx context.Context, id primitive.ObjectID) (*models.ChatRoom, error)
	FindRoomByConnection(ctx context.Context, connID primitive.ObjectID) (*models.ChatRoom, error)
	CreateChatRoom(ctx context.Context, room *models.ChatRoom) error
	SetConnectionChatRoom(ctx context.Context, connID, roomID primitive.ObjectID) error
	ListRoomsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChatRoom, error)
	RecordMessage(ctx context.Context, roomID, messageID, receiverID primitive.ObjectID) error
	ResetUnread(ctx context.Context, roomID, userID primitive.ObjectID) error
	ArchiveRoom(ctx context.Context, roomID primitive.ObjectID) error
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessagesByRoom(ctx context.Context, roomID primitive.ObjectID, limit int) ([]models.Message, error)
}

// Notifier delivers notifications best effort.
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

// RoomForConnection returns the connection's chat room, creating it if the
// accept-time provisioning never happened. Participants only.
func (s *Service) RoomForConnection(ctx context.Context, userID, connectionID primitive.ObjectID) (*models.ChatRoom, error) {
	conn, err := s.store.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, errs.NotFound("connection not found")
	}
	if !conn.HasParticipant(userID) {
		return nil, errs.Forbidden("not a participant of this connection")
	}

	room, err := s.store.FindRoomByConnection(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	counts := make([]models.UnreadCount, 0, len(conn.Participants))
	for _, p := range conn.Participants {
		counts = append(counts, models.UnreadCount{UserID: p, Count: 0})
	}
	room = &models.ChatRoom{
		ConnectionID: conn.ID,
		Participants: conn.Participants,
		UnreadCounts: counts,
	}
	if err := s.store.CreateChatRoom(ctx, room); err != nil {
		return nil, err
	}
	if err := s.store.SetConnectionChatRoom(ctx, conn.ID, room.ID); err != nil {
		s.log.Warn("chat room backfill failed",
			zap.String("connectionId", conn.ID.Hex()),
			zap.Error(err))
	}
	return room, nil
}

// Send persists a message, bumps the receiver's unread counter and the
// room's last-message pointers, and notifies the receiver.
func (s *Service) Send(ctx context.Context, userID, roomID primitive.ObjectID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errs.InvalidState("message body required")
	}

	room, err := s.store.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errs.NotFound("chat room not found")
	}
	if !room.HasParticipant(userID) {
		return nil, errs.Forbidden("not a participant of this room")
	}

	receiverID := room.Partner(userID)
	msg := &models.Message{
		RoomID: roomID,
		From:   userID,
		To:     receiverID,
		Body:   body,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	if err := s.store.RecordMessage(ctx, roomID, msg.ID, receiverID); err != nil {
		s.log.Warn("room metadata update failed",
			zap.String("roomId", roomID.Hex()),
			zap.Error(err))
	}

	snippet := body
	if len(snippet) > snippetMaxLen {
		snippet = snippet[:snippetMaxLen]
	}
	if err := s.store.TouchConnection(ctx, room.ConnectionID, snippet); err != nil {
		s.log.Warn("connection touch failed",
			zap.String("connectionId", room.ConnectionID.Hex()),
			zap.Error(err))
	}

	senderName := ""
	if sender, err := s.store.FindUserByID(ctx, userID); err == nil && sender != nil {
		senderName = sender.FullName
	}
	s.notifier.Send(ctx, &models.Notification{
		UserID:     receiverID,
		FromUserID: userID,
		Type:       models.NotifNewMessage,
		EntityID:   msg.ID,
		EntityType: models.EntityMessage,
		Message:    fmt.Sprintf("%s sent you a message", senderName),
	})

	return msg, nil
}

// Rooms returns the user's active rooms, most recent message first.
func (s *Service) Rooms(ctx context.Context, userID primitive.ObjectID) ([]models.ChatRoom, error) {
	return s.store.ListRoomsForUser(ctx, userID)
}

// Messages returns the latest messages of a room the user belongs to.
func (s *Service) Messages(ctx context.Context, userID, roomID primitive.ObjectID, limit int) ([]models.Message, error) {
	room, err := s.store.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errs.NotFound("chat room not found")
	}
	if !room.HasParticipant(userID) {
		return nil, errs.Forbidden("not a participant of this room")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.store.ListMessagesByRoom(ctx, roomID, limit)
}

// MarkRead zeroes the caller's unread counter for the room.
func (s *Service) MarkRead(ctx context.Context, userID, roomID primitive.ObjectID) error {
	room, err := s.store.FindRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return errs.NotFound("chat room not found")
	}
	if !room.HasParticipant(userID) {
		return errs.Forbidden("not a participant of this room")
	}
	return s.store.ResetUnread(ctx, roomID, userID)
}

// Archive soft-archives the room; messages are kept.
func (s *Service) Archive(ctx context.Context, userID, roomID primitive.ObjectID) error {
	room, err := s.store.FindRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return errs.NotFound("chat room not found")
	}
	if !room.HasParticipant(userID) {
		return errs.Forbidden("not authorized to archive this room")
	}
	return s.store.ArchiveRoom(ctx, roomID)
}
