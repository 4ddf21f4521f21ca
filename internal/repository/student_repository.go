package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"workskill/internal/database"
	"workskill/internal/domain/student"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepository interface {
	Create(ctx context.Context, s student.Student) (student.Student, error)
	GetByID(ctx context.Context, id string) (student.Student, error)
	GetByEmail(ctx context.Context, email string) (student.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type MongoStudentRepository struct {
	coll *mongo.Collection
}

func NewMongoStudentRepository(db database.DB) *MongoStudentRepository {
	return &MongoStudentRepository{coll: db.Collection(database.CollectionStudents)}
}

func (r *MongoStudentRepository) Create(ctx context.Context, s student.Student) (student.Student, error) {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))

	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return student.Student{}, mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return s, nil
}

func (r *MongoStudentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	oid, err := parseObjectID(id, ErrStudentNotFound)
	if err != nil {
		return student.Student{}, err
	}

	var out student.Student
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		return student.Student{}, mapFindError(err, ErrStudentNotFound)
	}
	return out, nil
}

func (r *MongoStudentRepository) GetByEmail(ctx context.Context, email string) (student.Student, error) {
	var out student.Student
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&out)
	if err != nil {
		return student.Student{}, mapFindError(err, ErrStudentNotFound)
	}
	return out, nil
}

func (r *MongoStudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoStudentRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := parseObjectID(id, ErrStudentNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLoginAt": at.UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStudentNotFound
	}
	return nil
}

var _ StudentRepository = (*MongoStudentRepository)(nil)
