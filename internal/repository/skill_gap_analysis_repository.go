package repository

import (
	"context"
	"errors"

	"workskill/internal/database"
	"workskill/internal/domain/analysis"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrAnalysisNotFound = errors.New("skill gap analysis not found")

type SkillGapAnalysisRepository interface {
	Insert(ctx context.Context, a analysis.SkillGapAnalysis) (analysis.SkillGapAnalysis, error)
	ClearCurrentRole(ctx context.Context, userID string) error
	FindCurrentRole(ctx context.Context, userID string) (analysis.SkillGapAnalysis, error)
	FindLatest(ctx context.Context, userID string) (analysis.SkillGapAnalysis, error)
	FindByUserID(ctx context.Context, userID string) ([]analysis.SkillGapAnalysis, error)
}

type MongoSkillGapAnalysisRepository struct {
	coll *mongo.Collection
}

func NewMongoSkillGapAnalysisRepository(db database.DB) *MongoSkillGapAnalysisRepository {
	return &MongoSkillGapAnalysisRepository{coll: db.Collection(database.CollectionSkillGapAnalyses)}
}

func (r *MongoSkillGapAnalysisRepository) Insert(ctx context.Context, a analysis.SkillGapAnalysis) (analysis.SkillGapAnalysis, error) {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return analysis.SkillGapAnalysis{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

func (r *MongoSkillGapAnalysisRepository) ClearCurrentRole(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_current_role": true},
		bson.M{"$set": bson.M{"is_current_role": false}},
	)
	return err
}

func (r *MongoSkillGapAnalysisRepository) FindCurrentRole(ctx context.Context, userID string) (analysis.SkillGapAnalysis, error) {
	return r.findOneNewest(ctx, bson.M{"user_id": userID, "is_current_role": true})
}

func (r *MongoSkillGapAnalysisRepository) FindLatest(ctx context.Context, userID string) (analysis.SkillGapAnalysis, error) {
	return r.findOneNewest(ctx, bson.M{"user_id": userID})
}

func (r *MongoSkillGapAnalysisRepository) FindByUserID(ctx context.Context, userID string) ([]analysis.SkillGapAnalysis, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "analyzed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]analysis.SkillGapAnalysis, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoSkillGapAnalysisRepository) findOneNewest(ctx context.Context, filter bson.M) (analysis.SkillGapAnalysis, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "analyzed_at", Value: -1}})

	var out analysis.SkillGapAnalysis
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&out); err != nil {
		return analysis.SkillGapAnalysis{}, mapFindError(err, ErrAnalysisNotFound)
	}
	return out, nil
}

var _ SkillGapAnalysisRepository = (*MongoSkillGapAnalysisRepository)(nil)
