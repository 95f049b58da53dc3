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

// FreelancerRepository handles persistence of freelancer directory records.
type FreelancerRepository struct {
	collection *mongo.Collection
}

// NewFreelancerRepository constructs the repository.
func NewFreelancerRepository(db *mongo.Database) *FreelancerRepository {
	return &FreelancerRepository{collection: db.Collection("freelancers")}
}

// List returns freelancers, optionally filtered by department, newest first.
func (r *FreelancerRepository) List(ctx context.Context, department string) ([]models.Freelancer, error) {
	filter := bson.M{}
	if department != "" {
		filter["department"] = department
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list freelancers: %w", err)
	}
	freelancers := make([]models.Freelancer, 0)
	if err := cursor.All(ctx, &freelancers); err != nil {
		return nil, fmt.Errorf("decode freelancers: %w", err)
	}
	return freelancers, nil
}

// FindByID returns a freelancer by identifier.
func (r *FreelancerRepository) FindByID(ctx context.Context, id string) (*models.Freelancer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var freelancer models.Freelancer
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&freelancer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find freelancer: %w", err)
	}
	return &freelancer, nil
}

// Create inserts a new freelancer record.
func (r *FreelancerRepository) Create(ctx context.Context, freelancer *models.Freelancer) error {
	now := time.Now().UTC()
	if freelancer.ID.IsZero() {
		freelancer.ID = primitive.NewObjectID()
	}
	freelancer.CreatedAt = now
	freelancer.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, freelancer); err != nil {
		return fmt.Errorf("create freelancer: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a freelancer record.
func (r *FreelancerRepository) Update(ctx context.Context, freelancer *models.Freelancer) error {
	freelancer.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":       freelancer.Name,
		"title":      freelancer.Title,
		"skills":     freelancer.Skills,
		"department": freelancer.Department,
		"linkedin":   freelancer.LinkedIn,
		"image":      freelancer.Image,
		"updated_at": freelancer.UpdatedAt,
	}}
	if _, err := r.collection.UpdateByID(ctx, freelancer.ID, update); err != nil {
		return fmt.Errorf("update freelancer: %w", err)
	}
	return nil
}

// Delete removes a freelancer record.
func (r *FreelancerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete freelancer: %w", err)
	}
	return nil
}
