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

// EnrollmentRepository handles persistence of course enrollments.
type EnrollmentRepository struct {
	collection *mongo.Collection
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{collection: db.Collection("enrollments")}
}

// Create inserts a new enrollment request.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	now := time.Now().UTC()
	if enrollment.ID.IsZero() {
		enrollment.ID = primitive.NewObjectID()
	}
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// FindByID returns an enrollment by identifier.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var enrollment models.Enrollment
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&enrollment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// List returns enrollments matching the optional status and course filters,
// newest first.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CourseSlug != "" {
		query["course.slug"] = filter.CourseSlug
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByUser returns all enrollments belonging to a user, newest first.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Enrollment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user.user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list user enrollments: %w", err)
	}
	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("decode user enrollments: %w", err)
	}
	return enrollments, nil
}

// HasActive reports whether the user holds a non-expired approved
// enrollment for the course.
func (r *EnrollmentRepository) HasActive(ctx context.Context, userID primitive.ObjectID, courseSlug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user.user_id": userID,
		"course.slug":  courseSlug,
		"status":       models.EnrollmentApproved,
		"expired":      false,
	})
	if err != nil {
		return false, fmt.Errorf("count active enrollments: %w", err)
	}
	return count > 0, nil
}

// HasPending reports whether the user already has a pending request for
// the course.
func (r *EnrollmentRepository) HasPending(ctx context.Context, userID primitive.ObjectID, courseSlug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user.user_id": userID,
		"course.slug":  courseSlug,
		"status":       models.EnrollmentPending,
	})
	if err != nil {
		return false, fmt.Errorf("count pending enrollments: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus applies a review decision. Approval stamps the access
// window and resets the renewal bookkeeping flags.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":                    enrollment.Status,
		"message":                   enrollment.Message,
		"purchase_date":             enrollment.PurchaseDate,
		"expiration_date":           enrollment.ExpirationDate,
		"renewal_notification_sent": enrollment.RenewalNotificationSent,
		"expired":                   enrollment.Expired,
		"updated_at":                enrollment.UpdatedAt,
	}}
	if _, err := r.collection.UpdateByID(ctx, enrollment.ID, update); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}

// MarkExpired flags a single enrollment as expired.
func (r *EnrollmentRepository) MarkExpired(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"expired":    true,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := r.collection.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("mark enrollment expired: %w", err)
	}
	return nil
}

// MarkRenewalNotified records that the renewal notice for an enrollment
// has been delivered, so the sweep never sends it twice.
func (r *EnrollmentRepository) MarkRenewalNotified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"renewal_notification_sent": true,
		"updated_at":                time.Now().UTC(),
	}}
	if _, err := r.collection.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("mark renewal notified: %w", err)
	}
	return nil
}

// ListExpiring returns approved, non-expired enrollments whose access
// window ends between now and until and which have not been notified yet.
func (r *EnrollmentRepository) ListExpiring(ctx context.Context, now, until time.Time) ([]models.Enrollment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"status":                    models.EnrollmentApproved,
		"expired":                   false,
		"renewal_notification_sent": false,
		"expiration_date":           bson.M{"$gte": now, "$lte": until},
	})
	if err != nil {
		return nil, fmt.Errorf("list expiring enrollments: %w", err)
	}
	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("decode expiring enrollments: %w", err)
	}
	return enrollments, nil
}

// ListLapsed returns approved enrollments whose access window has ended
// but which are not flagged expired yet.
func (r *EnrollmentRepository) ListLapsed(ctx context.Context, now time.Time) ([]models.Enrollment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"status":          models.EnrollmentApproved,
		"expired":         false,
		"expiration_date": bson.M{"$lt": now},
	})
	if err != nil {
		return nil, fmt.Errorf("list lapsed enrollments: %w", err)
	}
	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("decode lapsed enrollments: %w", err)
	}
	return enrollments, nil
}

// Delete removes an enrollment record.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
