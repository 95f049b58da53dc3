package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

const mentorUploadCategory = "mentors"

type mentorStore interface {
	List(ctx context.Context, department string) ([]models.Mentor, error)
	FindByID(ctx context.Context, id string) (*models.Mentor, error)
	Create(ctx context.Context, mentor *models.Mentor) error
	Update(ctx context.Context, mentor *models.Mentor) error
	Delete(ctx context.Context, id string) error
}

// CreateMentorRequest carries the fields for a new mentor.
type CreateMentorRequest struct {
	Name       string `validate:"required"`
	Department string `validate:"required"`
	LinkedIn   string
}

// UpdateMentorRequest carries a partial update; empty fields are left
// untouched.
type UpdateMentorRequest struct {
	Name       string
	Department string
	LinkedIn   *string
}

// MentorService manages the mentor directory.
type MentorService struct {
	repo      mentorStore
	files     fileStore
	maxUpload int64
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMentorService constructs a MentorService instance.
func NewMentorService(repo mentorStore, files fileStore, maxUpload int64, validate *validator.Validate, logger *zap.Logger) *MentorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MentorService{repo: repo, files: files, maxUpload: maxUpload, validator: validate, logger: logger}
}

// List returns mentors, optionally filtered by department.
func (s *MentorService) List(ctx context.Context, department string) ([]models.Mentor, error) {
	if department != "" && !models.ValidDepartment(department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}
	mentors, err := s.repo.List(ctx, department)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}
	return mentors, nil
}

// Get returns a single mentor.
func (s *MentorService) Get(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
	}
	return mentor, nil
}

// Create validates the payload, stores the optional image and persists
// the record.
func (s *MentorService) Create(ctx context.Context, req CreateMentorRequest, image *Upload) (*models.Mentor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Name and department are required")
	}
	if !models.ValidDepartment(req.Department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}

	imagePath, err := storeImage(s.files, mentorUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	mentor := &models.Mentor{
		Name:       strings.TrimSpace(req.Name),
		Department: req.Department,
		LinkedIn:   strings.TrimSpace(req.LinkedIn),
		Image:      imagePath,
	}
	if err := s.repo.Create(ctx, mentor); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mentor")
	}
	return mentor, nil
}

// Update applies the provided fields and replaces the image when a new
// one is uploaded.
func (s *MentorService) Update(ctx context.Context, id string, req UpdateMentorRequest, image *Upload) (*models.Mentor, error) {
	mentor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Department != "" && !models.ValidDepartment(req.Department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}

	imagePath, err := storeImage(s.files, mentorUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		mentor.Name = strings.TrimSpace(req.Name)
	}
	if req.Department != "" {
		mentor.Department = req.Department
	}
	if req.LinkedIn != nil {
		mentor.LinkedIn = strings.TrimSpace(*req.LinkedIn)
	}

	previousImage := mentor.Image
	if imagePath != "" {
		mentor.Image = imagePath
	}

	if err := s.repo.Update(ctx, mentor); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update mentor")
	}

	if imagePath != "" && previousImage != "" {
		if err := removeFile(s.files, previousImage); err != nil {
			s.logger.Warn("failed to remove replaced image", zap.Error(err), zap.String("path", previousImage))
		}
	}
	return mentor, nil
}

// Delete removes a mentor together with its stored image.
func (s *MentorService) Delete(ctx context.Context, id string) error {
	mentor, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete mentor")
	}
	if err := removeFile(s.files, mentor.Image); err != nil {
		s.logger.Warn("failed to remove image of deleted mentor", zap.Error(err), zap.String("path", mentor.Image))
	}
	return nil
}
