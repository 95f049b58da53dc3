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

// MentorRepository handles persistence of mentor directory records.
type MentorRepository struct {
	collection *mongo.Collection
}

// NewMentorRepository constructs the repository.
func NewMentorRepository(db *mongo.Database) *MentorRepository {
	return &MentorRepository{collection: db.Collection("mentors")}
}

// List returns mentors, optionally filtered by department, newest first.
func (r *MentorRepository) List(ctx context.Context, department string) ([]models.Mentor, error) {
	filter := bson.M{}
	if department != "" {
		filter["department"] = department
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	mentors := make([]models.Mentor, 0)
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("decode mentors: %w", err)
	}
	return mentors, nil
}

// FindByID returns a mentor by identifier.
func (r *MentorRepository) FindByID(ctx context.Context, id string) (*models.Mentor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var mentor models.Mentor
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&mentor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find mentor: %w", err)
	}
	return &mentor, nil
}

// Create inserts a new mentor record.
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	now := time.Now().UTC()
	if mentor.ID.IsZero() {
		mentor.ID = primitive.NewObjectID()
	}
	mentor.CreatedAt = now
	mentor.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, mentor); err != nil {
		return fmt.Errorf("create mentor: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a mentor record.
func (r *MentorRepository) Update(ctx context.Context, mentor *models.Mentor) error {
	mentor.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":       mentor.Name,
		"department": mentor.Department,
		"linkedin":   mentor.LinkedIn,
		"image":      mentor.Image,
		"updated_at": mentor.UpdatedAt,
	}}
	if _, err := r.collection.UpdateByID(ctx, mentor.ID, update); err != nil {
		return fmt.Errorf("update mentor: %w", err)
	}
	return nil
}

// Delete removes a mentor record.
func (r *MentorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete mentor: %w", err)
	}
	return nil
}
