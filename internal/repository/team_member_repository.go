package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/binaryhub/portal-api/internal/models"
)

// TeamMemberRepository handles persistence of team member directory records.
type TeamMemberRepository struct {
	collection *mongo.Collection
}

// NewTeamMemberRepository constructs the repository.
func NewTeamMemberRepository(db *mongo.Database) *TeamMemberRepository {
	return &TeamMemberRepository{collection: db.Collection("team_members")}
}

// List returns team members, optionally filtered by team, newest first.
func (r *TeamMemberRepository) List(ctx context.Context, team string) ([]models.TeamMember, error) {
	filter := bson.M{}
	if team != "" {
		filter["team"] = team
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	members := make([]models.TeamMember, 0)
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode team members: %w", err)
	}
	return members, nil
}

// FindByID returns a team member by identifier.
func (r *TeamMemberRepository) FindByID(ctx context.Context, id string) (*models.TeamMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var member models.TeamMember
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find team member: %w", err)
	}
	return &member, nil
}

// Create inserts a new team member record.
func (r *TeamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	now := time.Now().UTC()
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.CreatedAt = now
	member.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a team member record.
func (r *TeamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":        member.Name,
		"designation": member.Designation,
		"linkedin":    member.LinkedIn,
		"team":        member.Team,
		"image":       member.Image,
		"updated_at":  member.UpdatedAt,
	}}
	if _, err := r.collection.UpdateByID(ctx, member.ID, update); err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return nil
}

// Delete removes a team member record.
func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return nil
}
