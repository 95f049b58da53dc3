package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/binaryhub/portal-api/internal/models"
)

// AdminRepository provides access to the admins collection. Admin accounts
// are a separate credential domain from regular users.
type AdminRepository struct {
	collection *mongo.Collection
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{collection: db.Collection("admins")}
}

// FindByEmail returns an admin by email address.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// FindByID returns an admin by identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var admin models.Admin
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

// ExistsByEmail reports whether an admin with the email already exists.
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("count admins by email: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new admin and fills in the generated ID.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
