package repository

import (
	"context"
	"errors"
	"time"

	"workskill/internal/database"
	"workskill/internal/domain/profile"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) (profile.Profile, error)
}

type MongoProfileRepository struct {
	coll *mongo.Collection
}

func NewMongoProfileRepository(db database.DB) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(database.CollectionProfiles)}
}

func (r *MongoProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	var out profile.Profile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&out); err != nil {
		return profile.Profile{}, mapFindError(err, ErrProfileNotFound)
	}
	return out, nil
}

// Save upserts the profile keyed by its user id.
func (r *MongoProfileRepository) Save(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": p.UserID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return profile.Profile{}, mapWriteError(err)
	}
	return p, nil
}

var _ ProfileRepository = (*MongoProfileRepository)(nil)
