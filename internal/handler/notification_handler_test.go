package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/binaryhub/portal-api/internal/middleware"
	"github.com/binaryhub/portal-api/internal/models"
	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/config"
)

type stubNotificationStore struct {
	notifications map[string]*models.Notification
}

func (m *stubNotificationStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	list := make([]models.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (m *stubNotificationStore) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *stubNotificationStore) MarkRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	if n, ok := m.notifications[id]; ok && n.UserID == userID {
		n.Read = true
		return nil
	}
	return mongo.ErrNoDocuments
}

func (m *stubNotificationStore) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (m *stubNotificationStore) DeleteOwned(ctx context.Context, id string, userID primitive.ObjectID) error {
	if n, ok := m.notifications[id]; ok && n.UserID == userID {
		delete(m.notifications, id)
		return nil
	}
	return mongo.ErrNoDocuments
}

const notificationTestSecret = "notification-test-secret"

func userToken(t *testing.T, userID primitive.ObjectID) string {
	t.Helper()
	claims := models.JWTClaims{
		AccountID: userID.Hex(),
		Role:      models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(notificationTestSecret))
	require.NoError(t, err)
	return token
}

func newNotificationTestRouter(store *stubNotificationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, nil, nil, nil, nil, config.JWTConfig{Secret: notificationTestSecret})
	h := NewNotificationHandler(service.NewNotificationService(store, nil, time.Minute, nil))

	r := gin.New()
	group := r.Group("/api/notifications", middleware.JWT(authService))
	group.GET("", h.List)
	group.GET("/unread-count", h.UnreadCount)
	group.PATCH("/read-all", h.MarkAllRead)
	group.PATCH("/:id/read", h.MarkRead)
	group.DELETE("/:id", h.Delete)
	return r
}

func seedStore(userID primitive.ObjectID, unread int) *stubNotificationStore {
	store := &stubNotificationStore{notifications: make(map[string]*models.Notification)}
	for i := 0; i < unread; i++ {
		id := primitive.NewObjectID()
		store.notifications[id.Hex()] = &models.Notification{ID: id, UserID: userID}
	}
	return store
}

func TestNotificationHandlerRequiresAuth(t *testing.T) {
	r := newNotificationTestRouter(seedStore(primitive.NewObjectID(), 0))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationHandlerUnreadCount(t *testing.T) {
	userID := primitive.NewObjectID()
	r := newNotificationTestRouter(seedStore(userID, 2))

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestNotificationHandlerMarkReadOwnershipScoped(t *testing.T) {
	owner := primitive.NewObjectID()
	store := seedStore(owner, 1)
	r := newNotificationTestRouter(store)

	var id string
	for k := range store.notifications {
		id = k
	}

	// A different authenticated user cannot touch the owner's inbox.
	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/"+id+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, primitive.NewObjectID()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/notifications/"+id+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, owner))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.notifications[id].Read)
}

func TestNotificationHandlerDelete(t *testing.T) {
	owner := primitive.NewObjectID()
	store := seedStore(owner, 1)
	r := newNotificationTestRouter(store)

	var id string
	for k := range store.notifications {
		id = k
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/notifications/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, owner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.notifications)
}
