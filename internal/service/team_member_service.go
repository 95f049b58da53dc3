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

const teamMemberUploadCategory = "team-members"

type teamMemberStore interface {
	List(ctx context.Context, team string) ([]models.TeamMember, error)
	FindByID(ctx context.Context, id string) (*models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// CreateTeamMemberRequest carries the fields for a new team member.
type CreateTeamMemberRequest struct {
	Name        string `validate:"required"`
	Designation string `validate:"required"`
	LinkedIn    string
	Team        string `validate:"required"`
}

// UpdateTeamMemberRequest carries a partial update; empty fields are
// left untouched.
type UpdateTeamMemberRequest struct {
	Name        string
	Designation string
	LinkedIn    *string
	Team        string
}

// TeamMemberService manages the team member directory.
type TeamMemberService struct {
	repo      teamMemberStore
	files     fileStore
	maxUpload int64
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamMemberService constructs a TeamMemberService instance.
func NewTeamMemberService(repo teamMemberStore, files fileStore, maxUpload int64, validate *validator.Validate, logger *zap.Logger) *TeamMemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TeamMemberService{repo: repo, files: files, maxUpload: maxUpload, validator: validate, logger: logger}
}

// List returns team members, optionally filtered by team category.
func (s *TeamMemberService) List(ctx context.Context, team string) ([]models.TeamMember, error) {
	if team != "" && !models.ValidTeamCategory(team) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid team. Must be binary-hub or binary-digital")
	}
	members, err := s.repo.List(ctx, team)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team members")
	}
	return members, nil
}

// Get returns a single team member.
func (s *TeamMemberService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Team member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team member")
	}
	return member, nil
}

// Create validates the payload, stores the optional image and persists
// the record. A stored image is removed again if persistence fails.
func (s *TeamMemberService) Create(ctx context.Context, req CreateTeamMemberRequest, image *Upload) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Name, designation and team are required")
	}
	if !models.ValidTeamCategory(req.Team) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid team. Must be binary-hub or binary-digital")
	}

	imagePath, err := storeImage(s.files, teamMemberUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		Name:        strings.TrimSpace(req.Name),
		Designation: strings.TrimSpace(req.Designation),
		LinkedIn:    strings.TrimSpace(req.LinkedIn),
		Team:        models.TeamCategory(req.Team),
		Image:       imagePath,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create team member")
	}
	return member, nil
}

// Update applies the provided fields and replaces the image when a new
// one is uploaded.
func (s *TeamMemberService) Update(ctx context.Context, id string, req UpdateTeamMemberRequest, image *Upload) (*models.TeamMember, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Team != "" && !models.ValidTeamCategory(req.Team) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid team. Must be binary-hub or binary-digital")
	}

	imagePath, err := storeImage(s.files, teamMemberUploadCategory, s.maxUpload, image)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		member.Name = strings.TrimSpace(req.Name)
	}
	if req.Designation != "" {
		member.Designation = strings.TrimSpace(req.Designation)
	}
	if req.LinkedIn != nil {
		member.LinkedIn = strings.TrimSpace(*req.LinkedIn)
	}
	if req.Team != "" {
		member.Team = models.TeamCategory(req.Team)
	}

	previousImage := member.Image
	if imagePath != "" {
		member.Image = imagePath
	}

	if err := s.repo.Update(ctx, member); err != nil {
		if cleanupErr := removeFile(s.files, imagePath); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update team member")
	}

	if imagePath != "" && previousImage != "" {
		if err := removeFile(s.files, previousImage); err != nil {
			s.logger.Warn("failed to remove replaced image", zap.Error(err), zap.String("path", previousImage))
		}
	}
	return member, nil
}

// Delete removes a team member together with its stored image.
func (s *TeamMemberService) Delete(ctx context.Context, id string) error {
	member, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete team member")
	}
	if err := removeFile(s.files, member.Image); err != nil {
		s.logger.Warn("failed to remove image of deleted team member", zap.Error(err), zap.String("path", member.Image))
	}
	return nil
}
