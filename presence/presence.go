// Package presence tracks which users are currently online. State lives in
// Redis, keyed per user with a TTL, so it survives process restarts and is
// shared across nodes; a user with several open tabs holds several sessions
// under one key.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"venturelink/metrics"
)

const (
	userKeyPrefix = "presence:user:"
	onlineSetKey  = "presence:online"

	// SessionTTL bounds how long a crashed client counts as online; live
	// clients refresh it via Heartbeat.
	SessionTTL = 2 * time.Minute
)

type Tracker struct {
	client *redis.Client
}

// NewTracker connects to Redis and verifies the connection.
func NewTracker(addr string) (*Tracker, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("presence: redis connection failed: %w", err)
	}
	return &Tracker{client: client}, nil
}

// NewTrackerWithClient wraps an existing client; used by tests.
func NewTrackerWithClient(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

// Connect registers a new session for the user and returns its id. The
// caller passes the id back to Heartbeat and Disconnect.
func (t *Tracker) Connect(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.New().String()
	key := userKeyPrefix + userID

	pipe := t.client.Pipeline()
	pipe.SAdd(ctx, key, sessionID)
	pipe.Expire(ctx, key, SessionTTL)
	pipe.SAdd(ctx, onlineSetKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	t.updateGauge(ctx)
	return sessionID, nil
}

// Heartbeat refreshes the session TTL. Unknown sessions are re-registered,
// which covers a Redis flush or TTL expiry under a live client.
func (t *Tracker) Heartbeat(ctx context.Context, userID, sessionID string) error {
	key := userKeyPrefix + userID

	pipe := t.client.Pipeline()
	pipe.SAdd(ctx, key, sessionID)
	pipe.Expire(ctx, key, SessionTTL)
	pipe.SAdd(ctx, onlineSetKey, userID)
	_, err := pipe.Exec(ctx)
	return err
}

// Disconnect drops one session; the user stays online while other sessions
// remain.
func (t *Tracker) Disconnect(ctx context.Context, userID, sessionID string) error {
	key := userKeyPrefix + userID

	if err := t.client.SRem(ctx, key, sessionID).Err(); err != nil {
		return err
	}

	remaining, err := t.client.SCard(ctx, key).Result()
	if err != nil {
		return err
	}
	if remaining == 0 {
		pipe := t.client.Pipeline()
		pipe.Del(ctx, key)
		pipe.SRem(ctx, onlineSetKey, userID)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}

	t.updateGauge(ctx)
	return nil
}

// IsOnline checks the TTL'd per-user key, so it is accurate even when a
// client died without disconnecting.
func (t *Tracker) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := t.client.Exists(ctx, userKeyPrefix+userID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// OnlineCount returns the size of the online-user set. Best effort: users
// whose sessions expired without a Disconnect linger until their next
// interaction.
func (t *Tracker) OnlineCount(ctx context.Context) (int64, error) {
	return t.client.SCard(ctx, onlineSetKey).Result()
}

func (t *Tracker) updateGauge(ctx context.Context) {
	if n, err := t.client.SCard(ctx, onlineSetKey).Result(); err == nil {
		metrics.OnlineUsers.Set(float64(n))
	}
}

func (t *Tracker) Close() error {
	return t.client.Close()
}
