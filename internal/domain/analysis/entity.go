package analysis

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillAnalysis describes one skill required by a job role and how the user
// measures against it.
type SkillAnalysis struct {
	Name                string  `bson:"name" json:"name"`
	Importance          float64 `bson:"importance" json:"importance"`
	RequiredProficiency int     `bson:"requiredProficiency" json:"requiredProficiency"`
	Category            string  `bson:"category,omitempty" json:"category"`
	Probability         float64 `bson:"probability" json:"probability"`
	UserProficiency     int     `bson:"userProficiency" json:"userProficiency"`
	Gap                 int     `bson:"gap" json:"gap"`
	Status              string  `bson:"status,omitempty" json:"status"`
	UserConfidence      string  `bson:"userConfidence,omitempty" json:"userConfidence"`
}

type UserSkillAnalysis struct {
	Name        string `bson:"name" json:"name"`
	Proficiency int    `bson:"proficiency" json:"proficiency"`
	Level       string `bson:"level,omitempty" json:"level"`
	Verified    bool   `bson:"verified" json:"verified"`
	Confidence  string `bson:"confidence,omitempty" json:"confidence"`
}

type SkillGapAnalysis struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             string              `bson:"user_id" json:"userId"`
	JobRole            string              `bson:"job_role" json:"jobRole"`
	MatchScore         float64             `bson:"match_score" json:"matchScore"`
	RequiredSkills     []SkillAnalysis     `bson:"required_skills" json:"requiredSkills"`
	CurrentSkills      []UserSkillAnalysis `bson:"current_skills" json:"currentSkills"`
	MissingSkills      []SkillAnalysis     `bson:"missing_skills" json:"missingSkills"`
	PartialMatchSkills []SkillAnalysis     `bson:"partial_match_skills" json:"partialMatchSkills"`
	GapAnalysis        map[string]any      `bson:"gap_analysis" json:"gapAnalysis"`
	Recommendations    []string            `bson:"recommendations" json:"recommendations"`
	TimeToCloseGap     string              `bson:"time_to_close_gap,omitempty" json:"timeToCloseGap"`
	SalaryImpact       string              `bson:"salary_impact,omitempty" json:"salaryImpact"`
	IsCurrentRole      bool                `bson:"is_current_role" json:"isCurrentRole"`
	AnalyzedAt         time.Time           `bson:"analyzed_at" json:"analyzedAt"`
}
