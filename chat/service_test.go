package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"venturelink/errs"
	"venturelink/models"
)

type memStore struct {
	users       map[primitive.ObjectID]*models.User
	connections map[primitive.ObjectID]*models.Connection
	rooms       map[primitive.ObjectID]*models.ChatRoom
	messages    []*models.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[primitive.ObjectID]*models.User),
		connections: make(map[primitive.ObjectID]*models.Connection),
		rooms:       make(map[primitive.ObjectID]*models.ChatRoom),
	}
}

func (m *memStore) addUser(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	m.users[id] = &models.User{ID: id, FullName: name, Role: models.RoleFounder}
	return id
}

func (m *memStore) addConnection(a, b primitive.ObjectID) *models.Connection {
	conn := &models.Connection{
		ID:           primitive.NewObjectID(),
		Participants: []primitive.ObjectID{a, b},
		Type:         models.ConnectionTypeCofounder,
	}
	m.connections[conn.ID] = conn
	return conn
}

func (m *memStore) addRoom(conn *models.Connection) *models.ChatRoom {
	room := &models.ChatRoom{
		ID:           primitive.NewObjectID(),
		ConnectionID: conn.ID,
		Participants: conn.Participants,
		UnreadCounts: []models.UnreadCount{
			{UserID: conn.Participants[0]},
			{UserID: conn.Participants[1]},
		},
		IsActive: true,
	}
	m.rooms[room.ID] = room
	conn.ChatRoomID = room.ID
	return room
}

func (m *memStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.users[id], nil
}

func (m *memStore) FindConnectionByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	return m.connections[id], nil
}

func (m *memStore) TouchConnection(_ context.Context, id primitive.ObjectID, snippet string) error {
	if c, ok := m.connections[id]; ok {
		c.LastMessageSnippet = snippet
		c.LastInteractionAt = time.Now().Unix()
	}
	return nil
}

func (m *memStore) FindRoomByID(_ context.Context, id primitive.ObjectID) (*models.ChatRoom, error) {
	return m.rooms[id], nil
}

func (m *memStore) FindRoomByConnection(_ context.Context, connID primitive.ObjectID) (*models.ChatRoom, error) {
	for _, r := range m.rooms {
		if r.ConnectionID == connID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateChatRoom(_ context.Context, room *models.ChatRoom) error {
	room.ID = primitive.NewObjectID()
	room.IsActive = true
	m.rooms[room.ID] = room
	return nil
}

func (m *memStore) SetConnectionChatRoom(_ context.Context, connID, roomID primitive.ObjectID) error {
	if c, ok := m.connections[connID]; ok {
		c.ChatRoomID = roomID
	}
	return nil
}

func (m *memStore) ListRoomsForUser(_ context.Context, userID primitive.ObjectID) ([]models.ChatRoom, error) {
	var out []models.ChatRoom
	for _, r := range m.rooms {
		if r.IsActive && r.HasParticipant(userID) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) RecordMessage(_ context.Context, roomID, messageID, receiverID primitive.ObjectID) error {
	r, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	r.LastMessageID = messageID
	r.LastMessageAt = time.Now().Unix()
	for i := range r.UnreadCounts {
		if r.UnreadCounts[i].UserID == receiverID {
			r.UnreadCounts[i].Count++
		}
	}
	return nil
}

func (m *memStore) ResetUnread(_ context.Context, roomID, userID primitive.ObjectID) error {
	r, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	for i := range r.UnreadCounts {
		if r.UnreadCounts[i].UserID == userID {
			r.UnreadCounts[i].Count = 0
		}
	}
	return nil
}

func (m *memStore) ArchiveRoom(_ context.Context, roomID primitive.ObjectID) error {
	if r, ok := m.rooms[roomID]; ok {
		r.IsActive = false
	}
	return nil
}

func (m *memStore) CreateMessage(_ context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().Unix()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memStore) ListMessagesByRoom(_ context.Context, roomID primitive.ObjectID, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.RoomID == roomID {
			out = append(out, *msg)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type captureNotifier struct {
	sent []*models.Notification
}

func (c *captureNotifier) Send(_ context.Context, n *models.Notification) {
	c.sent = append(c.sent, n)
}

func newTestService(store *memStore) (*Service, *captureNotifier) {
	notifier := &captureNotifier{}
	return NewService(store, notifier, zap.NewNop()), notifier
}

func TestRoomForConnection_ReturnsExisting(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	conn := store.addConnection(a, b)
	existing := store.addRoom(conn)

	room, err := svc.RoomForConnection(context.Background(), a, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, room.ID)
	assert.Len(t, store.rooms, 1)
}

func TestRoomForConnection_LazilyCreates(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	conn := store.addConnection(a, b)

	room, err := svc.RoomForConnection(context.Background(), a, conn.ID)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, conn.ID, room.ConnectionID)
	assert.Equal(t, room.ID, conn.ChatRoomID)
	require.Len(t, room.UnreadCounts, 2)
	for _, uc := range room.UnreadCounts {
		assert.Zero(t, uc.Count)
	}
}

func TestRoomForConnection_NonParticipantForbidden(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	conn := store.addConnection(a, b)
	stranger := store.addUser("eve")

	_, err := svc.RoomForConnection(context.Background(), stranger, conn.ID)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestSend_PersistsAndBumpsUnread(t *testing.T) {
	store := newMemStore()
	svc, notifier := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	conn := store.addConnection(a, b)
	room := store.addRoom(conn)

	msg, err := svc.Send(context.Background(), a, room.ID, "  hello there  ")
	require.NoError(t, err)
	assert.Equal(t, "hello there", msg.Body)
	assert.Equal(t, b, msg.To)

	stored := store.rooms[room.ID]
	assert.Equal(t, msg.ID, stored.LastMessageID)
	for _, uc := range stored.UnreadCounts {
		if uc.UserID == b {
			assert.Equal(t, 1, uc.Count)
		} else {
			assert.Zero(t, uc.Count)
		}
	}
	assert.Equal(t, "hello there", store.connections[conn.ID].LastMessageSnippet)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, b, notifier.sent[0].UserID)
	assert.Equal(t, models.NotifNewMessage, notifier.sent[0].Type)
	assert.Equal(t, "ada sent you a message", notifier.sent[0].Message)
}

func TestSend_EmptyBodyRejected(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	room := store.addRoom(store.addConnection(a, b))

	_, err := svc.Send(context.Background(), a, room.ID, "   ")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidState(err))
	assert.Empty(t, store.messages)
}

func TestSend_NonParticipantForbidden(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	room := store.addRoom(store.addConnection(a, b))
	stranger := store.addUser("eve")

	_, err := svc.Send(context.Background(), stranger, room.ID, "hi")
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestMarkRead_ZeroesOwnCounterOnly(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	room := store.addRoom(store.addConnection(a, b))

	_, err := svc.Send(context.Background(), a, room.ID, "one")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), b, room.ID, "two")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), b, room.ID))

	for _, uc := range store.rooms[room.ID].UnreadCounts {
		if uc.UserID == b {
			assert.Zero(t, uc.Count)
		} else {
			assert.Equal(t, 1, uc.Count)
		}
	}
}

func TestArchive_HidesRoomFromListing(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	a := store.addUser("ada")
	b := store.addUser("ben")
	room := store.addRoom(store.addConnection(a, b))

	rooms, err := svc.Rooms(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	require.NoError(t, svc.Archive(context.Background(), a, room.ID))

	rooms, err = svc.Rooms(context.Background(), a)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestMessages_UnknownRoom(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	_, err := svc.Messages(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 0)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
