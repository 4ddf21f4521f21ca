package repository

import (
	"context"
	"errors"
	"time"

	"workskill/internal/database"
	"workskill/internal/domain/recommendation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

type RecommendationRepository interface {
	Save(ctx context.Context, rec recommendation.Recommendation) (recommendation.Recommendation, error)
	FindLatest(ctx context.Context, userID string) (recommendation.Recommendation, error)
	SaveAction(ctx context.Context, a recommendation.CourseAction) (recommendation.CourseAction, error)
}

type MongoRecommendationRepository struct {
	recs    *mongo.Collection
	actions *mongo.Collection
}

func NewMongoRecommendationRepository(db database.DB) *MongoRecommendationRepository {
	return &MongoRecommendationRepository{
		recs:    db.Collection(database.CollectionCourseRecommendations),
		actions: db.Collection(database.CollectionCourseActions),
	}
}

func (r *MongoRecommendationRepository) Save(ctx context.Context, rec recommendation.Recommendation) (recommendation.Recommendation, error) {
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now().UTC()
	}
	res, err := r.recs.InsertOne(ctx, rec)
	if err != nil {
		return recommendation.Recommendation{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return rec, nil
}

func (r *MongoRecommendationRepository) FindLatest(ctx context.Context, userID string) (recommendation.Recommendation, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})

	var out recommendation.Recommendation
	if err := r.recs.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&out); err != nil {
		return recommendation.Recommendation{}, mapFindError(err, ErrRecommendationNotFound)
	}
	return out, nil
}

func (r *MongoRecommendationRepository) SaveAction(ctx context.Context, a recommendation.CourseAction) (recommendation.CourseAction, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.actions.InsertOne(ctx, a)
	if err != nil {
		return recommendation.CourseAction{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

var _ RecommendationRepository = (*MongoRecommendationRepository)(nil)
