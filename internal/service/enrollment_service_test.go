package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

type mockEnrollmentStore struct {
	enrollments map[string]*models.Enrollment
	active      map[string]bool
	pending     map[string]bool
	created     *models.Enrollment
	expired     []primitive.ObjectID
	notified    []primitive.ObjectID
	deleted     []string
}

func (m *mockEnrollmentStore) key(userID primitive.ObjectID, slug string) string {
	return userID.Hex() + "/" + slug
}

func (m *mockEnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	if m.enrollments == nil {
		m.enrollments = make(map[string]*models.Enrollment)
	}
	e.ID = primitive.NewObjectID()
	m.enrollments[e.ID.Hex()] = e
	m.created = e
	return nil
}

func (m *mockEnrollmentStore) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockEnrollmentStore) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	list := make([]models.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		if filter.CourseSlug != "" && e.Course.Slug != filter.CourseSlug {
			continue
		}
		list = append(list, *e)
	}
	return list, nil
}

func (m *mockEnrollmentStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Enrollment, error) {
	list := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.User.UserID == userID {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *mockEnrollmentStore) HasActive(ctx context.Context, userID primitive.ObjectID, slug string) (bool, error) {
	return m.active[m.key(userID, slug)], nil
}

func (m *mockEnrollmentStore) HasPending(ctx context.Context, userID primitive.ObjectID, slug string) (bool, error) {
	return m.pending[m.key(userID, slug)], nil
}

func (m *mockEnrollmentStore) UpdateStatus(ctx context.Context, e *models.Enrollment) error {
	m.enrollments[e.ID.Hex()] = e
	return nil
}

func (m *mockEnrollmentStore) MarkExpired(ctx context.Context, id primitive.ObjectID) error {
	m.expired = append(m.expired, id)
	if e, ok := m.enrollments[id.Hex()]; ok {
		e.Expired = true
	}
	return nil
}

func (m *mockEnrollmentStore) MarkRenewalNotified(ctx context.Context, id primitive.ObjectID) error {
	m.notified = append(m.notified, id)
	if e, ok := m.enrollments[id.Hex()]; ok {
		e.RenewalNotificationSent = true
	}
	return nil
}

func (m *mockEnrollmentStore) ListExpiring(ctx context.Context, now, until time.Time) ([]models.Enrollment, error) {
	list := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.Status != models.EnrollmentApproved || e.Expired || e.RenewalNotificationSent || e.ExpirationDate == nil {
			continue
		}
		if e.ExpirationDate.Before(now) || e.ExpirationDate.After(until) {
			continue
		}
		list = append(list, *e)
	}
	return list, nil
}

func (m *mockEnrollmentStore) ListLapsed(ctx context.Context, now time.Time) ([]models.Enrollment, error) {
	list := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.Status != models.EnrollmentApproved || e.Expired || e.ExpirationDate == nil {
			continue
		}
		if e.ExpirationDate.Before(now) {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *mockEnrollmentStore) Delete(ctx context.Context, id string) error {
	delete(m.enrollments, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestEnrollmentService(store *mockEnrollmentStore, notifications *mockNotificationWriter, files *mockFileStore) *EnrollmentService {
	return NewEnrollmentService(store, notifications, files, 5*1024*1024, 30*24*time.Hour, validator.New(), zap.NewNop())
}

func validCreateRequest() CreateEnrollmentRequest {
	return CreateEnrollmentRequest{
		CourseSlug:    "web-dev",
		CourseTitle:   "Web Development",
		FullName:      "Ayesha Khan",
		Email:         "ayesha@example.com",
		PaymentMethod: "easypaisa",
	}
}

func TestEnrollmentServiceCreate(t *testing.T) {
	store := &mockEnrollmentStore{}
	files := &mockFileStore{}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, files)

	userID := newObjectID()
	enrollment, err := svc.Create(context.Background(), userID.Hex(), validCreateRequest(), testUpload("proof.png"))
	require.NoError(t, err)
	require.NotNil(t, enrollment)

	assert.Equal(t, models.EnrollmentPending, enrollment.Status)
	assert.Equal(t, userID, enrollment.User.UserID)
	assert.NotEmpty(t, enrollment.Payment.Screenshot)
	assert.Nil(t, enrollment.PurchaseDate)
	assert.Len(t, files.saved, 1)
}

func TestEnrollmentServiceCreateKeepsApplicantNote(t *testing.T) {
	store := &mockEnrollmentStore{}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, &mockFileStore{})

	req := validCreateRequest()
	req.Message = "  Please confirm the weekend batch  "
	enrollment, err := svc.Create(context.Background(), newObjectID().Hex(), req, testUpload("proof.png"))
	require.NoError(t, err)

	assert.Equal(t, "Please confirm the weekend batch", enrollment.Message)
	assert.Equal(t, enrollment.Message, store.created.Message)
}

func TestEnrollmentServiceCreateRequiresScreenshot(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentStore{}, &mockNotificationWriter{}, &mockFileStore{})

	_, err := svc.Create(context.Background(), newObjectID().Hex(), validCreateRequest(), nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Payment screenshot is required", appErr.Message)
}

func TestEnrollmentServiceCreateRejectsDuplicateActive(t *testing.T) {
	userID := newObjectID()
	store := &mockEnrollmentStore{active: map[string]bool{userID.Hex() + "/web-dev": true}}
	files := &mockFileStore{}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, files)

	_, err := svc.Create(context.Background(), userID.Hex(), validCreateRequest(), testUpload("proof.png"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "You already have an active enrollment for this course. Please wait until it expires before re-enrolling.", appErr.Message)
	assert.Empty(t, files.saved)
}

func TestEnrollmentServiceCreateRejectsDuplicatePending(t *testing.T) {
	userID := newObjectID()
	store := &mockEnrollmentStore{pending: map[string]bool{userID.Hex() + "/web-dev": true}}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, &mockFileStore{})

	_, err := svc.Create(context.Background(), userID.Hex(), validCreateRequest(), testUpload("proof.png"))
	require.Error(t, err)
	assert.Equal(t, "You already have a pending enrollment request for this course.", appErrors.FromError(err).Message)
}

func TestEnrollmentServiceCreateRejectsInvalidPaymentMethod(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentStore{}, &mockNotificationWriter{}, &mockFileStore{})

	req := validCreateRequest()
	req.PaymentMethod = "cash"
	_, err := svc.Create(context.Background(), newObjectID().Hex(), req, testUpload("proof.png"))
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestEnrollmentServiceApprovalSetsAccessWindow(t *testing.T) {
	store := &mockEnrollmentStore{}
	notifications := &mockNotificationWriter{}
	svc := newTestEnrollmentService(store, notifications, &mockFileStore{})

	enrollment, err := svc.Create(context.Background(), newObjectID().Hex(), validCreateRequest(), testUpload("proof.png"))
	require.NoError(t, err)

	frozen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	updated, err := svc.UpdateStatus(context.Background(), enrollment.ID.Hex(), "approved", "")
	require.NoError(t, err)

	require.NotNil(t, updated.PurchaseDate)
	require.NotNil(t, updated.ExpirationDate)
	assert.Equal(t, frozen, *updated.PurchaseDate)
	assert.Equal(t, frozen.Add(30*24*time.Hour), *updated.ExpirationDate)
	assert.False(t, updated.Expired)
	assert.False(t, updated.RenewalNotificationSent)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, models.NotificationAdmissionAccepted, notifications.created[0].Type)
}

func TestEnrollmentServiceRejectionNotifiesOnce(t *testing.T) {
	store := &mockEnrollmentStore{}
	notifications := &mockNotificationWriter{}
	svc := newTestEnrollmentService(store, notifications, &mockFileStore{})

	enrollment, err := svc.Create(context.Background(), newObjectID().Hex(), validCreateRequest(), testUpload("proof.png"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), enrollment.ID.Hex(), "rejected", "Payment proof unreadable")
	require.NoError(t, err)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, models.NotificationAdmissionRejected, notifications.created[0].Type)
	assert.Contains(t, notifications.created[0].Message, "Payment proof unreadable")

	// Re-applying the same status is not a transition.
	_, err = svc.UpdateStatus(context.Background(), enrollment.ID.Hex(), "rejected", "")
	require.NoError(t, err)
	assert.Len(t, notifications.created, 1)
}

func TestEnrollmentServiceUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentStore{}, &mockNotificationWriter{}, &mockFileStore{})

	_, err := svc.UpdateStatus(context.Background(), newObjectID().Hex(), "cancelled", "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestEnrollmentServiceListFlipsLapsedApprovals(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	id := newObjectID()
	store := &mockEnrollmentStore{enrollments: map[string]*models.Enrollment{
		id.Hex(): {
			ID:             id,
			Status:         models.EnrollmentApproved,
			ExpirationDate: &past,
		},
	}}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, &mockFileStore{})

	list, err := svc.List(context.Background(), models.EnrollmentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Expired)
	assert.Len(t, store.expired, 1)
}

func TestEnrollmentServiceListByUserValidatesID(t *testing.T) {
	svc := newTestEnrollmentService(&mockEnrollmentStore{}, &mockNotificationWriter{}, &mockFileStore{})

	_, err := svc.ListByUser(context.Background(), "not-an-object-id")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid user ID format", appErr.Message)
}

func TestEnrollmentServiceDeleteRemovesScreenshot(t *testing.T) {
	store := &mockEnrollmentStore{}
	files := &mockFileStore{}
	svc := newTestEnrollmentService(store, &mockNotificationWriter{}, files)

	enrollment, err := svc.Create(context.Background(), newObjectID().Hex(), validCreateRequest(), testUpload("proof.png"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), enrollment.ID.Hex()))
	require.Len(t, files.deleted, 1)
	assert.Equal(t, enrollment.Payment.Screenshot, files.deleted[0])
}
