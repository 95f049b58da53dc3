package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enumerates the feed entry kinds.
type NotificationType string

const (
	NotificationAdmissionAccepted NotificationType = "admission_accepted"
	NotificationAdmissionRejected NotificationType = "admission_rejected"
	NotificationWelcome           NotificationType = "welcome"
	NotificationCourseRenewal     NotificationType = "course_renewal"
)

// Notification is a single entry in a user's inbox.
type Notification struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID  `bson:"user" json:"user"`
	Type         NotificationType    `bson:"type" json:"type"`
	Title        string              `bson:"title" json:"title"`
	Message      string              `bson:"message" json:"message"`
	Read         bool                `bson:"read" json:"read"`
	EnrollmentID *primitive.ObjectID `bson:"enrollment_id,omitempty" json:"enrollmentId,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
}
