package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamCategory identifies which of the two teams a member belongs to.
type TeamCategory string

const (
	TeamBinaryHub     TeamCategory = "binary-hub"
	TeamBinaryDigital TeamCategory = "binary-digital"
)

// ValidTeamCategory reports whether the value is a known team.
func ValidTeamCategory(v string) bool {
	switch TeamCategory(v) {
	case TeamBinaryHub, TeamBinaryDigital:
		return true
	}
	return false
}

// Departments mentors and freelancers can belong to.
var Departments = []string{
	"Web Development",
	"UI UX Designing",
	"Graphic Designing",
	"Amazon",
	"Digital Marketing",
	"Bookkeeping",
}

// ValidDepartment reports whether the value is a known department.
func ValidDepartment(v string) bool {
	for _, d := range Departments {
		if d == v {
			return true
		}
	}
	return false
}

// TeamMember is a directory record for the organization's own staff.
type TeamMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Designation string             `bson:"designation" json:"designation"`
	LinkedIn    string             `bson:"linkedin" json:"linkedin"`
	Team        TeamCategory       `bson:"team" json:"team"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Mentor is a directory record for external course mentors.
type Mentor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Department string             `bson:"department" json:"department"`
	LinkedIn   string             `bson:"linkedin" json:"linkedin"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Freelancer is a directory record for listed freelancers.
type Freelancer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Title      string             `bson:"title" json:"title"`
	Skills     []string           `bson:"skills" json:"skills"`
	Department string             `bson:"department" json:"department"`
	LinkedIn   string             `bson:"linkedin" json:"linkedin"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
