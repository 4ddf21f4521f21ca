package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionStudents              = "students"
	CollectionProfiles              = "profiles"
	CollectionUserSkills            = "user_skills"
	CollectionSkillGapAnalyses      = "skill_gap_analyses"
	CollectionResumes               = "resumes"
	CollectionCourseRecommendations = "course_recommendations"
	CollectionCourseActions         = "course_actions"
)

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Collection(name string) *mongo.Collection
	EnsureIndexes(ctx context.Context) error
}
