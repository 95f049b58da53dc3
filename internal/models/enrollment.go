package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod enumerates the supported manual payment channels.
type PaymentMethod string

const (
	PaymentEasypaisa PaymentMethod = "easypaisa"
	PaymentBank      PaymentMethod = "bank"
)

// ValidPaymentMethod reports whether the value is a supported method.
func ValidPaymentMethod(v string) bool {
	switch PaymentMethod(v) {
	case PaymentEasypaisa, PaymentBank:
		return true
	}
	return false
}

// EnrollmentStatus tracks the manual review lifecycle.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// ValidEnrollmentStatus reports whether the value is a known status.
func ValidEnrollmentStatus(v string) bool {
	switch EnrollmentStatus(v) {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

// CourseRef is the embedded course reference on an enrollment.
type CourseRef struct {
	Slug  string `bson:"slug" json:"slug"`
	Title string `bson:"title" json:"title"`
}

// Applicant is the snapshot of the enrolling user at submission time.
type Applicant struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	FullName string             `bson:"full_name" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Payment records the chosen method and the proof-of-payment file.
type Payment struct {
	Method     PaymentMethod `bson:"method" json:"method"`
	Screenshot string        `bson:"screenshot" json:"screenshot"`
}

// Enrollment is a user's request to join a course, subject to manual
// payment-proof approval.
type Enrollment struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Course                   CourseRef          `bson:"course" json:"course"`
	User                     Applicant          `bson:"user" json:"user"`
	Payment                  Payment            `bson:"payment" json:"payment"`
	Status                   EnrollmentStatus   `bson:"status" json:"status"`
	Message                  string             `bson:"message,omitempty" json:"message,omitempty"`
	PurchaseDate             *time.Time         `bson:"purchase_date,omitempty" json:"purchaseDate,omitempty"`
	ExpirationDate           *time.Time         `bson:"expiration_date,omitempty" json:"expirationDate,omitempty"`
	RenewalNotificationSent  bool               `bson:"renewal_notification_sent" json:"renewalNotificationSent"`
	Expired                  bool               `bson:"expired" json:"expired"`
	CreatedAt                time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt                time.Time          `bson:"updated_at" json:"updatedAt"`
}

// EnrollmentFilter captures the optional admin list filters.
type EnrollmentFilter struct {
	Status     string
	CourseSlug string
}
