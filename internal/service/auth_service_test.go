package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/binaryhub/portal-api/internal/models"
	"github.com/binaryhub/portal-api/pkg/config"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

type mockUserRepo struct {
	byEmail map[string]*models.User
	created *models.User
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	user.ID = newObjectID()
	m.byEmail[user.Email] = user
	m.created = user
	return nil
}

type mockAdminRepo struct {
	byEmail map[string]*models.Admin
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	for _, a := range m.byEmail {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.Admin)
	}
	admin.ID = newObjectID()
	m.byEmail[admin.Email] = admin
	return nil
}

type mockNotificationWriter struct {
	created []*models.Notification
	fail    bool
}

func (m *mockNotificationWriter) Create(ctx context.Context, n *models.Notification) error {
	if m.fail {
		return assert.AnError
	}
	m.created = append(m.created, n)
	return nil
}

func newTestAuthService(users *mockUserRepo, admins *mockAdminRepo, notifications *mockNotificationWriter) *AuthService {
	var nw notificationWriter
	if notifications != nil {
		nw = notifications
	}
	return NewAuthService(users, admins, nw, validator.New(), zap.NewNop(), config.JWTConfig{
		Secret: "test-secret",
		Issuer: "test",
	})
}

func TestAuthServiceUserSignup(t *testing.T) {
	users := &mockUserRepo{}
	notifications := &mockNotificationWriter{}
	svc := newTestAuthService(users, &mockAdminRepo{}, notifications)

	res, err := svc.UserSignup(context.Background(), models.SignupRequest{
		FullName: "Ayesha Khan",
		Email:    "Ayesha@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ayesha@example.com", res.User.Email)

	require.NotNil(t, users.created)
	assert.NotEqual(t, "secret1", users.created.PasswordHash)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, models.NotificationWelcome, notifications.created[0].Type)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, users.created.ID.Hex(), claims.AccountID)
}

func TestAuthServiceUserSignupDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{}
	svc := newTestAuthService(users, &mockAdminRepo{}, nil)

	_, err := svc.UserSignup(context.Background(), models.SignupRequest{
		FullName: "First",
		Email:    "dup@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.UserSignup(context.Background(), models.SignupRequest{
		FullName: "Second",
		Email:    "dup@example.com",
		Password: "secret2",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "User with this email already exists", appErr.Message)
}

func TestAuthServiceUserSignupNotificationFailureIsSwallowed(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockAdminRepo{}, &mockNotificationWriter{fail: true})

	res, err := svc.UserSignup(context.Background(), models.SignupRequest{
		FullName: "Bilal",
		Email:    "bilal@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthServiceUserLoginInvalidCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := &mockUserRepo{byEmail: map[string]*models.User{
		"known@example.com": {ID: newObjectID(), Email: "known@example.com", PasswordHash: string(hash)},
	}}
	svc := newTestAuthService(users, &mockAdminRepo{}, nil)

	_, err = svc.UserLogin(context.Background(), models.LoginRequest{Email: "known@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)

	_, err = svc.UserLogin(context.Background(), models.LoginRequest{Email: "unknown@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)

	res, err := svc.UserLogin(context.Background(), models.LoginRequest{Email: "known@example.com", Password: "correct-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthServiceAdminTokensCarryAdminRole(t *testing.T) {
	admins := &mockAdminRepo{}
	svc := newTestAuthService(&mockUserRepo{}, admins, nil)

	res, err := svc.AdminSignup(context.Background(), models.SignupRequest{
		FullName: "Ops",
		Email:    "ops@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockAdminRepo{}, nil)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}
