package skill

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusVerified         = "verified"
	StatusPending          = "pending"
	StatusUnverified       = "unverified"
	StatusNeedsImprovement = "needs_improvement"
)

const (
	LevelPending      = "Pending"
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

type UserSkill struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               string             `bson:"userId" json:"userId"`
	Name                 string             `bson:"name" json:"name"`
	Category             string             `bson:"category" json:"category"`
	Proficiency          int                `bson:"proficiency" json:"proficiency"`
	Level                string             `bson:"level" json:"level"`
	Status               string             `bson:"status" json:"status"`
	Score                *int               `bson:"score,omitempty" json:"score"`
	Verified             bool               `bson:"verified" json:"verified"`
	LastVerified         *time.Time         `bson:"lastVerified,omitempty" json:"lastVerified"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
	ExternalExamID       string             `bson:"externalExamId,omitempty" json:"externalExamId,omitempty"`
	ExternalExamProvider string             `bson:"externalExamProvider,omitempty" json:"externalExamProvider,omitempty"`
	ExamURL              string             `bson:"examUrl,omitempty" json:"examUrl,omitempty"`
	ExperienceMonths     int                `bson:"experienceMonths" json:"experienceMonths"`
	Projects             []string           `bson:"projects,omitempty" json:"projects"`
	ConfidenceLevel      string             `bson:"confidenceLevel" json:"confidenceLevel"`
}

// LevelForScore buckets an exam score into a proficiency level.
func LevelForScore(score int) string {
	switch {
	case score >= 80:
		return LevelExpert
	case score >= 60:
		return LevelAdvanced
	case score >= 40:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// ConfidenceWeight converts a confidence label into the numeric weight the
// ML service expects.
func ConfidenceWeight(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.7
	case ConfidenceLow:
		return 0.3
	default:
		return 0.5
	}
}
