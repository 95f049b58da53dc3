package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/binaryhub/portal-api/internal/middleware"
	"github.com/binaryhub/portal-api/internal/models"
	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/config"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
}

func (m *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *stubUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	user.ID = primitive.NewObjectID()
	m.byEmail[user.Email] = user
	return nil
}

type stubAdminRepo struct{}

func (m *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return nil, mongo.ErrNoDocuments
}

func (m *stubAdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	return nil, mongo.ErrNoDocuments
}

func (m *stubAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *stubAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return nil
}

func newAuthTestRouter() (*gin.Engine, *stubUserRepo) {
	gin.SetMode(gin.TestMode)
	users := &stubUserRepo{}
	authService := service.NewAuthService(users, &stubAdminRepo{}, nil, nil, nil, config.JWTConfig{Secret: "handler-test-secret"})
	h := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/signin", h.Signin)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/auth/me", middleware.JWT(authService), h.Me)
	return r, users
}

func performJSON(r *gin.Engine, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerSignupAndMe(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := performJSON(r, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Hira Shah",
		"email":    "hira@example.com",
		"password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "hira@example.com", envelope.Data.User.Email)

	me := performJSON(r, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + envelope.Data.Token,
	})
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "hira@example.com")
}

func TestAuthHandlerSignupDuplicate(t *testing.T) {
	r, _ := newAuthTestRouter()

	payload := map[string]string{"fullName": "Hira", "email": "dup@example.com", "password": "secret1"}
	first := performJSON(r, http.MethodPost, "/api/auth/signup", payload, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(r, http.MethodPost, "/api/auth/signup", payload, nil)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "User with this email already exists")
}

func TestAuthHandlerSigninBadCredentials(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := performJSON(r, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthHandlerMeWithoutToken(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := performJSON(r, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := performJSON(r, http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")
}
