package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

const paymentUploadCategory = "payments"

type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Enrollment, error)
	HasActive(ctx context.Context, userID primitive.ObjectID, courseSlug string) (bool, error)
	HasPending(ctx context.Context, userID primitive.ObjectID, courseSlug string) (bool, error)
	UpdateStatus(ctx context.Context, enrollment *models.Enrollment) error
	MarkExpired(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

// CreateEnrollmentRequest carries a user's course enrollment submission.
type CreateEnrollmentRequest struct {
	CourseSlug    string `validate:"required"`
	CourseTitle   string `validate:"required"`
	FullName      string `validate:"required"`
	Email         string `validate:"required,email"`
	Phone         string
	PaymentMethod string `validate:"required"`
	Message       string
}

// EnrollmentService manages the enrollment review lifecycle.
type EnrollmentService struct {
	repo           enrollmentStore
	notifications  notificationWriter
	files          fileStore
	maxUpload      int64
	accessDuration time.Duration
	validator      *validator.Validate
	logger         *zap.Logger
	now            func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(repo enrollmentStore, notifications notificationWriter, files fileStore, maxUpload int64, accessDuration time.Duration, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if accessDuration <= 0 {
		accessDuration = 30 * 24 * time.Hour
	}
	return &EnrollmentService{
		repo:           repo,
		notifications:  notifications,
		files:          files,
		maxUpload:      maxUpload,
		accessDuration: accessDuration,
		validator:      validate,
		logger:         logger,
		now:            time.Now,
	}
}

// Create submits a pending enrollment with a payment screenshot. The
// screenshot is removed again if the request is rejected after storage.
func (s *EnrollmentService) Create(ctx context.Context, userID string, req CreateEnrollmentRequest, screenshot *Upload) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Course, full name, email and payment method are required")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid payment method. Must be easypaisa or bank")
	}
	if screenshot == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Payment screenshot is required")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	active, err := s.repo.HasActive(ctx, uid, req.CourseSlug)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check active enrollments")
	}
	if active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "You already have an active enrollment for this course. Please wait until it expires before re-enrolling.")
	}

	pending, err := s.repo.HasPending(ctx, uid, req.CourseSlug)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending enrollments")
	}
	if pending {
		return nil, appErrors.Clone(appErrors.ErrValidation, "You already have a pending enrollment request for this course.")
	}

	screenshotPath, err := storeImage(s.files, paymentUploadCategory, s.maxUpload, screenshot)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		Course: models.CourseRef{
			Slug:  strings.TrimSpace(req.CourseSlug),
			Title: strings.TrimSpace(req.CourseTitle),
		},
		User: models.Applicant{
			UserID:   uid,
			FullName: strings.TrimSpace(req.FullName),
			Email:    normalizeEmail(req.Email),
			Phone:    strings.TrimSpace(req.Phone),
		},
		Payment: models.Payment{
			Method:     models.PaymentMethod(req.PaymentMethod),
			Screenshot: screenshotPath,
		},
		Status:  models.EnrollmentPending,
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if cleanupErr := removeFile(s.files, screenshotPath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned screenshot", zap.Error(cleanupErr), zap.String("path", screenshotPath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return enrollment, nil
}

// List returns enrollments for review, flipping lapsed approvals to
// expired as they are read.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	if filter.Status != "" && !models.ValidEnrollmentStatus(filter.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid status. Must be pending, approved or rejected")
	}
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	s.refreshExpiry(ctx, enrollments)
	return enrollments, nil
}

// ListMine returns the authenticated user's own enrollments.
func (s *EnrollmentService) ListMine(ctx context.Context, userID string) ([]models.Enrollment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	enrollments, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	s.refreshExpiry(ctx, enrollments)
	return enrollments, nil
}

// ListByUser returns one user's enrollments for an admin.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid user ID format")
	}
	enrollments, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	s.refreshExpiry(ctx, enrollments)
	return enrollments, nil
}

// Get returns a single enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch enrollment")
	}
	return enrollment, nil
}

// UpdateStatus applies a review decision. Approval stamps the access
// window; a transition into approved or rejected emits exactly one
// notification, best-effort.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id, status, message string) (*models.Enrollment, error) {
	if !models.ValidEnrollmentStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid status. Must be pending, approved or rejected")
	}

	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := enrollment.Status
	enrollment.Status = models.EnrollmentStatus(status)
	if message != "" {
		enrollment.Message = message
	}

	if enrollment.Status == models.EnrollmentApproved && previous != models.EnrollmentApproved {
		now := s.now().UTC()
		expiration := now.Add(s.accessDuration)
		enrollment.PurchaseDate = &now
		enrollment.ExpirationDate = &expiration
		enrollment.Expired = false
		enrollment.RenewalNotificationSent = false
	}

	if err := s.repo.UpdateStatus(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enrollment status")
	}

	if previous != enrollment.Status {
		s.notifyDecision(ctx, enrollment)
	}
	return enrollment, nil
}

// Delete removes an enrollment and its payment screenshot.
func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	if err := removeFile(s.files, enrollment.Payment.Screenshot); err != nil {
		s.logger.Warn("failed to remove screenshot of deleted enrollment", zap.Error(err), zap.String("path", enrollment.Payment.Screenshot))
	}
	return nil
}

// refreshExpiry marks lapsed approvals as expired while they are being
// read, mirroring the flag in the returned slice.
func (s *EnrollmentService) refreshExpiry(ctx context.Context, enrollments []models.Enrollment) {
	now := s.now().UTC()
	for i := range enrollments {
		e := &enrollments[i]
		if e.Status != models.EnrollmentApproved || e.Expired || e.ExpirationDate == nil {
			continue
		}
		if e.ExpirationDate.After(now) {
			continue
		}
		if err := s.repo.MarkExpired(ctx, e.ID); err != nil {
			s.logger.Warn("failed to mark enrollment expired", zap.Error(err), zap.String("enrollment_id", e.ID.Hex()))
			continue
		}
		e.Expired = true
	}
}

func (s *EnrollmentService) notifyDecision(ctx context.Context, enrollment *models.Enrollment) {
	if s.notifications == nil {
		return
	}

	var notification *models.Notification
	switch enrollment.Status {
	case models.EnrollmentApproved:
		notification = &models.Notification{
			UserID:       enrollment.User.UserID,
			Type:         models.NotificationAdmissionAccepted,
			Title:        "Admission Accepted",
			Message:      fmt.Sprintf("Congratulations! Your enrollment in %s has been approved.", enrollment.Course.Title),
			EnrollmentID: &enrollment.ID,
		}
	case models.EnrollmentRejected:
		message := fmt.Sprintf("Your enrollment in %s has been rejected.", enrollment.Course.Title)
		if enrollment.Message != "" {
			message = fmt.Sprintf("%s Reason: %s", message, enrollment.Message)
		}
		notification = &models.Notification{
			UserID:       enrollment.User.UserID,
			Type:         models.NotificationAdmissionRejected,
			Title:        "Admission Rejected",
			Message:      message,
			EnrollmentID: &enrollment.ID,
		}
	default:
		return
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to create decision notification",
			zap.Error(err),
			zap.String("enrollment_id", enrollment.ID.Hex()),
			zap.String("status", string(enrollment.Status)))
	}
}
