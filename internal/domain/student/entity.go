package student

import (
	"strings"
	"time"

	"workskill/internal/domain/profile"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

type Student struct {
	ID                primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	FirstName         string                  `bson:"firstName" json:"firstName"`
	LastName          string                  `bson:"lastName" json:"lastName"`
	Email             string                  `bson:"email" json:"email"`
	PhoneNumber       string                  `bson:"phoneNumber,omitempty" json:"phoneNumber"`
	DOB               *time.Time              `bson:"dob,omitempty" json:"dob"`
	Role              string                  `bson:"role" json:"role"`
	CompanyName       string                  `bson:"companyName,omitempty" json:"companyName"`
	CurrentJobRole    string                  `bson:"currentJobRole,omitempty" json:"currentJobRole"`
	YearsOfExperience int                     `bson:"yearsOfExperience" json:"yearsOfExperience"`
	PasswordHash      string                  `bson:"password" json:"-"`
	Department        string                  `bson:"department,omitempty" json:"department"`
	Skills            []string                `bson:"skills" json:"skills"`
	Certifications    []string                `bson:"certifications" json:"certifications"`
	Education         []profile.Education     `bson:"education" json:"education"`
	Experience        []profile.Experience    `bson:"experience" json:"experience"`
	Summary           string                  `bson:"summary,omitempty" json:"summary"`
	AcademicScore     float64                 `bson:"academicScore,omitempty" json:"academicScore"`
	EnrolledCourses   []string                `bson:"enrolledCourses" json:"enrolledCourses"`
	ResumeHistory     []profile.ResumeHistory `bson:"resumeHistory" json:"resumeHistory"`
	CurrentResumeID   string                  `bson:"currentResumeId,omitempty" json:"currentResumeId"`
	IsActive          bool                    `bson:"isActive" json:"isActive"`
	EmailVerified     bool                    `bson:"emailVerified" json:"emailVerified"`
	CreatedAt         time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time               `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt       *time.Time              `bson:"lastLoginAt,omitempty" json:"lastLoginAt"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}
