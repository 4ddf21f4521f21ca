package repository

import (
	"context"
	"errors"

	"workskill/internal/database"
	"workskill/internal/domain/resume"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(ctx context.Context, r resume.Resume) (resume.Resume, error)
	FindByID(ctx context.Context, id string) (resume.Resume, error)
	// FindByUserID lists resumes newest first without their file bytes.
	FindByUserID(ctx context.Context, userID string, limit int) ([]resume.Resume, error)
	Update(ctx context.Context, r resume.Resume) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, userID string, id string) error
}

type MongoResumeRepository struct {
	coll *mongo.Collection
}

func NewMongoResumeRepository(db database.DB) *MongoResumeRepository {
	return &MongoResumeRepository{coll: db.Collection(database.CollectionResumes)}
}

func (r *MongoResumeRepository) Create(ctx context.Context, doc resume.Resume) (resume.Resume, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return resume.Resume{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc, nil
}

func (r *MongoResumeRepository) FindByID(ctx context.Context, id string) (resume.Resume, error) {
	oid, err := parseObjectID(id, ErrResumeNotFound)
	if err != nil {
		return resume.Resume{}, err
	}

	var out resume.Resume
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		return resume.Resume{}, mapFindError(err, ErrResumeNotFound)
	}
	return out, nil
}

func (r *MongoResumeRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]resume.Resume, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "uploadDate", Value: -1}}).
		SetProjection(bson.M{"fileData": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]resume.Resume, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites every field except the stored file bytes.
func (r *MongoResumeRepository) Update(ctx context.Context, doc resume.Resume) error {
	if doc.ID.IsZero() {
		return ErrResumeNotFound
	}

	set, err := resumeUpdateSet(doc)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// resumeUpdateSet builds the $set document for an update. Parsed fields are
// always present so a re-analysis that finds nothing clears the old values.
func resumeUpdateSet(doc resume.Resume) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	delete(set, "_id")
	delete(set, "fileData")
	return set, nil
}

func (r *MongoResumeRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, ErrResumeNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *MongoResumeRepository) SetActive(ctx context.Context, userID string, id string) error {
	oid, err := parseObjectID(id, ErrResumeNotFound)
	if err != nil {
		return err
	}

	if _, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "_id": bson.M{"$ne": oid}},
		bson.M{"$set": bson.M{"isActive": false}},
	); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "_id": oid},
		bson.M{"$set": bson.M{"isActive": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrResumeNotFound
	}
	return nil
}

var _ ResumeRepository = (*MongoResumeRepository)(nil)
