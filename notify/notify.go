// Package notify persists notifications and fans them out over NATS and web
// push. Delivery is best effort: the services that emit notifications never
// see a delivery failure, they are logged here instead.
package notify

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"venturelink/messaging"
	"venturelink/metrics"
	"venturelink/models"
	"venturelink/repository"
)

// Store persists notification documents.
type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID primitive.ObjectID) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) error
}

// PushStore resolves web-push subscriptions.
type PushStore interface {
	FindPushSubscription(ctx context.Context, userID primitive.ObjectID) (*repository.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, userID primitive.ObjectID) error
}

// Publisher fans a notification event out to other processes; nil disables
// fan-out.
type Publisher interface {
	Publish(subject string, data []byte) error
}

const listLimit = 20

type Service struct {
	store Store
	push  *Pusher
	pub   Publisher
	log   *zap.Logger
}

func NewService(store Store, push *Pusher, pub Publisher, log *zap.Logger) *Service {
	return &Service{store: store, push: push, pub: pub, log: log}
}

// Send persists the notification and attempts NATS and web-push delivery.
// Always fire and forget for the caller; every failure is logged and
// swallowed.
func (s *Service) Send(ctx context.Context, n *models.Notification) {
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.log.Error("persist notification failed",
			zap.String("type", n.Type),
			zap.String("userId", n.UserID.Hex()),
			zap.Error(err))
		return
	}
	metrics.NotificationsSent.WithLabelValues(n.Type).Inc()

	if s.pub != nil {
		data, err := json.Marshal(n)
		if err == nil {
			err = s.pub.Publish(messaging.SubjectNotify+"."+n.UserID.Hex(), data)
		}
		if err != nil {
			s.log.Warn("notification fan-out failed",
				zap.String("userId", n.UserID.Hex()),
				zap.Error(err))
		}
	}

	if s.push != nil {
		if err := s.push.Send(ctx, n); err != nil {
			s.log.Warn("web push failed",
				zap.String("userId", n.UserID.Hex()),
				zap.Error(err))
		}
	}
}

// List returns the user's latest notifications, newest first.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, userID, listLimit)
}

// MarkRead marks one notification read; NotFound when it does not exist or
// belongs to someone else.
func (s *Service) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (*models.Notification, error) {
	return s.store.MarkNotificationRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}
