package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/schema"
)

type lessonRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db, coll: db.Database.Collection(schema.LessonsCollection)}
}

func (repo *lessonRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Lessons)
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, lsn lesson.Lesson) error {
	_, err := repo.coll.InsertOne(ctx, lsn)
	return translate(err, schema.LessonsCollection)
}

func (repo *lessonRepository) LastLessonPosition(ctx context.Context, courseID string) (int32, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "position", Value: -1}}).
		SetProjection(bson.M{"position": 1})
	var last struct {
		Position int32 `bson:"position"`
	}
	err := repo.coll.FindOne(ctx, bson.M{"courseId": courseID}, opts).Decode(&last)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "finding last lesson position")
	}
	return last.Position, nil
}

func (repo *lessonRepository) QueryLessonsByCourse(ctx context.Context, courseID string) ([]lesson.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	return findAll[lesson.Lesson](ctx, repo.coll, bson.M{"courseId": courseID}, opts)
}

func (repo *lessonRepository) DeleteLessonByID(ctx context.Context, id string) (int64, error) {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"lessonId": id})
	if err != nil {
		return 0, errors.Wrap(err, "deleting lesson")
	}
	return res.DeletedCount, nil
}
