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

const freelancerUploadCategory = "freelancers"

type freelancerStore interface {
	List(ctx context.Context, department string) ([]models.Freelancer, error)
	FindByID(ctx context.Context, id string) (*models.Freelancer, error)
	Create(ctx context.Context, freelancer *models.Freelancer) error
	Update(ctx context.Context, freelancer *models.Freelancer) error
	Delete(ctx context.Context, id string) error
}

// CreateFreelancerRequest carries the fields for a new freelancer.
type CreateFreelancerRequest struct {
	Name       string   `validate:"required"`
	Title      string   `validate:"required"`
	Skills     []string `validate:"required,min=1"`
	Department string   `validate:"required"`
	LinkedIn   string
}

// UpdateFreelancerRequest carries a partial update; empty fields are
// left untouched. A non-nil Skills slice replaces the stored set.
type UpdateFreelancerRequest struct {
	Name       string
	Title      string
	Skills     []string
	Department string
	LinkedIn   *string
}

// FreelancerService manages the freelancer directory.
type FreelancerService struct {
	repo      freelancerStore
	files     fileStore
	maxUpload int64
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFreelancerService constructs a FreelancerService instance.
func NewFreelancerService(repo freelancerStore, files fileStore, maxUpload int64, validate *validator.Validate, logger *zap.Logger) *FreelancerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FreelancerService{repo: repo, files: files, maxUpload: maxUpload, validator: validate, logger: logger}
}

// List returns freelancers, optionally filtered by department.
func (s *FreelancerService) List(ctx context.Context, department string) ([]models.Freelancer, error) {
	if department != "" && !models.ValidDepartment(department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}
	freelancers, err := s.repo.List(ctx, department)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list freelancers")
	}
	return freelancers, nil
}

// Get returns a single freelancer.
func (s *FreelancerService) Get(ctx context.Context, id string) (*models.Freelancer, error) {
	freelancer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Freelancer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch freelancer")
	}
	return freelancer, nil
}

// Create validates the payload, stores the optional image and persists
// the record.
func (s *FreelancerService) Create(ctx context.Context, req CreateFreelancerRequest, image *Upload) (*models.Freelancer, error) {
	req.Skills = trimSkills(req.Skills)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Name, title, department and at least one skill are required")
	}
	if !models.ValidDepartment(req.Department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}

	imagePath, err := storeImage(s.files, freelancerUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	freelancer := &models.Freelancer{
		Name:       strings.TrimSpace(req.Name),
		Title:      strings.TrimSpace(req.Title),
		Skills:     req.Skills,
		Department: req.Department,
		LinkedIn:   strings.TrimSpace(req.LinkedIn),
		Image:      imagePath,
	}
	if err := s.repo.Create(ctx, freelancer); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create freelancer")
	}
	return freelancer, nil
}

// Update applies the provided fields and replaces the image when a new
// one is uploaded.
func (s *FreelancerService) Update(ctx context.Context, id string, req UpdateFreelancerRequest, image *Upload) (*models.Freelancer, error) {
	freelancer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Department != "" && !models.ValidDepartment(req.Department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid department")
	}
	if req.Skills != nil {
		req.Skills = trimSkills(req.Skills)
		if len(req.Skills) == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "At least one skill is required")
		}
	}

	imagePath, err := storeImage(s.files, freelancerUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		freelancer.Name = strings.TrimSpace(req.Name)
	}
	if req.Title != "" {
		freelancer.Title = strings.TrimSpace(req.Title)
	}
	if req.Skills != nil {
		freelancer.Skills = req.Skills
	}
	if req.Department != "" {
		freelancer.Department = req.Department
	}
	if req.LinkedIn != nil {
		freelancer.LinkedIn = strings.TrimSpace(*req.LinkedIn)
	}

	previousImage := freelancer.Image
	if imagePath != "" {
		freelancer.Image = imagePath
	}

	if err := s.repo.Update(ctx, freelancer); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update freelancer")
	}

	if imagePath != "" && previousImage != "" {
		if err := removeFile(s.files, previousImage); err != nil {
			s.logger.Warn("failed to remove replaced image", zap.Error(err), zap.String("path", previousImage))
		}
	}
	return freelancer, nil
}

// Delete removes a freelancer together with its stored image.
func (s *FreelancerService) Delete(ctx context.Context, id string) error {
	freelancer, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete freelancer")
	}
	if err := removeFile(s.files, freelancer.Image); err != nil {
		s.logger.Warn("failed to remove image of deleted freelancer", zap.Error(err), zap.String("path", freelancer.Image))
	}
	return nil
}

func trimSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
