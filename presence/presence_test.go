package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTrackerWithClient(client), mr
}

func TestConnectAndDisconnect(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)

	session, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, session)

	online, err = tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, online)

	count, err := tracker.OnlineCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, tracker.Disconnect(ctx, "u1", session))

	online, err = tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)

	count, err = tracker.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMultipleSessionsKeepUserOnline(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	s1, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)
	s2, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	require.NoError(t, tracker.Disconnect(ctx, "u1", s1))

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, online)

	require.NoError(t, tracker.Disconnect(ctx, "u1", s2))

	online, err = tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestSessionExpiryMarksOffline(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)

	mr.FastForward(SessionTTL + time.Second)

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestHeartbeatRefreshesTTL(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	session, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)

	mr.FastForward(SessionTTL - time.Second)
	require.NoError(t, tracker.Heartbeat(ctx, "u1", session))
	mr.FastForward(SessionTTL - time.Second)

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, online)
}

func TestHeartbeatReregistersExpiredSession(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	session, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)

	mr.FastForward(SessionTTL + time.Second)
	require.NoError(t, tracker.Heartbeat(ctx, "u1", session))

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, online)
}

func TestOnlineCountTracksDistinctUsers(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Connect(ctx, "u1")
	require.NoError(t, err)
	_, err = tracker.Connect(ctx, "u1")
	require.NoError(t, err)
	_, err = tracker.Connect(ctx, "u2")
	require.NoError(t, err)

	count, err := tracker.OnlineCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
