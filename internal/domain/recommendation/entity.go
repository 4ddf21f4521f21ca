package recommendation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SourceML       = "ml"
	SourceFallback = "fallback"
)

const (
	ActionEnrolled = "enrolled"
	ActionSaved    = "saved"
)

const (
	StepCurrent  = "current"
	StepUpcoming = "upcoming"
)

type Course struct {
	ID               string   `bson:"id,omitempty" json:"id"`
	SkillName        string   `bson:"skillName,omitempty" json:"skillName"`
	Platform         string   `bson:"platform,omitempty" json:"platform"`
	Title            string   `bson:"title" json:"title"`
	Instructor       string   `bson:"instructor,omitempty" json:"instructor"`
	Description      string   `bson:"description,omitempty" json:"description"`
	URL              string   `bson:"url,omitempty" json:"url"`
	Duration         string   `bson:"duration,omitempty" json:"duration"`
	Difficulty       string   `bson:"difficulty,omitempty" json:"difficulty"`
	Rating           float64  `bson:"rating" json:"rating"`
	StudentCount     int      `bson:"studentCount" json:"studentCount"`
	Price            string   `bson:"price,omitempty" json:"price"`
	OriginalPrice    string   `bson:"originalPrice,omitempty" json:"originalPrice"`
	Features         []string `bson:"features,omitempty" json:"features"`
	DurationCategory string   `bson:"durationCategory,omitempty" json:"durationCategory"`
	PlatformIcon     string   `bson:"platformIcon,omitempty" json:"platformIcon"`
	RelevanceScore   float64  `bson:"relevanceScore" json:"relevanceScore"`
}

type PathStep struct {
	Step        int      `bson:"step" json:"step"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Duration    string   `bson:"duration" json:"duration"`
	Skills      []string `bson:"skills" json:"skills"`
	Status      string   `bson:"status" json:"status"`
	Courses     []string `bson:"courses" json:"courses"`
}

// MissingSkill is a skill the user lacks for the target role, ranked by
// priority.
type MissingSkill struct {
	Name        string  `bson:"name" json:"name"`
	Importance  float64 `bson:"importance" json:"importance"`
	Category    string  `bson:"category,omitempty" json:"category"`
	Priority    string  `bson:"priority" json:"priority"`
	Description string  `bson:"description,omitempty" json:"description"`
}

type Recommendation struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                string             `bson:"userId" json:"userId"`
	MissingSkills         []MissingSkill     `bson:"missingSkills" json:"missingSkills"`
	CourseRecommendations []Course           `bson:"courses" json:"courseRecommendations"`
	LearningPathway       []PathStep         `bson:"learningPathway" json:"learningPathway"`
	Insights              []string           `bson:"insights" json:"insights"`
	ProgressPercentage    float64            `bson:"progress" json:"progressPercentage"`
	CurrentJobRole        string             `bson:"currentJobRole" json:"currentJobRole"`
	TargetJobRole         string             `bson:"jobRole" json:"targetJobRole"`
	MatchScore            float64            `bson:"matchScore" json:"matchScore"`
	Source                string             `bson:"source" json:"source"`
	GeneratedAt           time.Time          `bson:"generatedAt" json:"generatedAt"`
}

type CourseAction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	CourseID    string             `bson:"courseId" json:"courseId"`
	CourseTitle string             `bson:"courseTitle" json:"courseTitle"`
	Action      string             `bson:"action" json:"action"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
