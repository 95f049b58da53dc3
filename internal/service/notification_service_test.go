package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

type mockNotificationStore struct {
	notifications map[string]*models.Notification
	countCalls    int
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	list := make([]models.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	m.countCalls++
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	if n, ok := m.notifications[id]; ok && n.UserID == userID {
		n.Read = true
		return nil
	}
	return mongo.ErrNoDocuments
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockNotificationStore) DeleteOwned(ctx context.Context, id string, userID primitive.ObjectID) error {
	if n, ok := m.notifications[id]; ok && n.UserID == userID {
		delete(m.notifications, id)
		return nil
	}
	return mongo.ErrNoDocuments
}

type mockCache struct {
	values  map[string]string
	deleted []string
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", appErrors.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func seedNotifications(userID primitive.ObjectID, unread int) *mockNotificationStore {
	store := &mockNotificationStore{notifications: make(map[string]*models.Notification)}
	for i := 0; i < unread; i++ {
		id := primitive.NewObjectID()
		store.notifications[id.Hex()] = &models.Notification{ID: id, UserID: userID, Read: false}
	}
	return store
}

func TestNotificationServiceUnreadCountUsesCache(t *testing.T) {
	userID := newObjectID()
	store := seedNotifications(userID, 3)
	cache := &mockCache{}
	svc := NewNotificationService(store, cache, time.Minute, zap.NewNop())

	count, err := svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 1, store.countCalls)

	// Second read is served from the cache.
	count, err = svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 1, store.countCalls)
}

func TestNotificationServiceMutationsInvalidateCache(t *testing.T) {
	userID := newObjectID()
	store := seedNotifications(userID, 2)
	cache := &mockCache{}
	svc := NewNotificationService(store, cache, time.Minute, zap.NewNop())

	_, err := svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	require.NotEmpty(t, cache.values)

	var anyID string
	for id := range store.notifications {
		anyID = id
		break
	}
	require.NoError(t, svc.MarkRead(context.Background(), userID.Hex(), anyID))
	assert.Empty(t, cache.values)

	count, err := svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationServiceMarkReadEnforcesOwnership(t *testing.T) {
	owner := newObjectID()
	intruder := newObjectID()
	store := seedNotifications(owner, 1)
	svc := NewNotificationService(store, nil, time.Minute, zap.NewNop())

	var id string
	for k := range store.notifications {
		id = k
	}

	err := svc.MarkRead(context.Background(), intruder.Hex(), id)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestNotificationServiceDeleteEnforcesOwnership(t *testing.T) {
	owner := newObjectID()
	store := seedNotifications(owner, 1)
	svc := NewNotificationService(store, nil, time.Minute, zap.NewNop())

	err := svc.Delete(context.Background(), owner.Hex(), newObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	userID := newObjectID()
	store := seedNotifications(userID, 4)
	svc := NewNotificationService(store, nil, time.Minute, zap.NewNop())

	require.NoError(t, svc.MarkAllRead(context.Background(), userID.Hex()))

	count, err := svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Zero(t, count)
}
