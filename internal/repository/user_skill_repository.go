package repository

import (
	"context"
	"errors"
	"time"

	"workskill/internal/database"
	"workskill/internal/domain/skill"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]skill.UserSkill, error)
	FindByID(ctx context.Context, id string) (skill.UserSkill, error)
	Create(ctx context.Context, s skill.UserSkill) (skill.UserSkill, error)
	Update(ctx context.Context, s skill.UserSkill) (skill.UserSkill, error)
}

type MongoUserSkillRepository struct {
	coll *mongo.Collection
}

func NewMongoUserSkillRepository(db database.DB) *MongoUserSkillRepository {
	return &MongoUserSkillRepository{coll: db.Collection(database.CollectionUserSkills)}
}

func (r *MongoUserSkillRepository) FindByUserID(ctx context.Context, userID string) ([]skill.UserSkill, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]skill.UserSkill, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoUserSkillRepository) FindByID(ctx context.Context, id string) (skill.UserSkill, error) {
	oid, err := parseObjectID(id, ErrUserSkillNotFound)
	if err != nil {
		return skill.UserSkill{}, err
	}

	var out skill.UserSkill
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		return skill.UserSkill{}, mapFindError(err, ErrUserSkillNotFound)
	}
	return out, nil
}

func (r *MongoUserSkillRepository) Create(ctx context.Context, s skill.UserSkill) (skill.UserSkill, error) {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return skill.UserSkill{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return s, nil
}

func (r *MongoUserSkillRepository) Update(ctx context.Context, s skill.UserSkill) (skill.UserSkill, error) {
	if s.ID.IsZero() {
		return skill.UserSkill{}, ErrUserSkillNotFound
	}
	s.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return skill.UserSkill{}, mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return skill.UserSkill{}, ErrUserSkillNotFound
	}
	return s, nil
}

var _ UserSkillRepository = (*MongoUserSkillRepository)(nil)
