package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/schema"
)

type courseRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db, coll: db.Database.Collection(schema.CoursesCollection)}
}

func (repo *courseRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Courses)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) error {
	_, err := repo.coll.InsertOne(ctx, crs)
	return translate(err, schema.CoursesCollection)
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var crs course.Course
	if err := repo.coll.FindOne(ctx, bson.M{"courseId": id}).Decode(&crs); err != nil {
		return course.Course{}, notFound(err, core.CourseRef(id))
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	return findAll[course.Course](ctx, repo.coll, bson.M{})
}

func (repo *courseRepository) QueryPublishedCourses(ctx context.Context) ([]course.Course, error) {
	return findAll[course.Course](ctx, repo.coll, bson.M{"isPublished": true})
}

func (repo *courseRepository) update(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, translate(err, schema.CoursesCollection)
	}
	return res.ModifiedCount, nil
}

func (repo *courseRepository) PublishCourse(ctx context.Context, id string, updatedAt time.Time) (int64, error) {
	return repo.update(ctx,
		bson.M{"courseId": id, "isPublished": false},
		bson.M{"$set": bson.M{"isPublished": true, "updatedAt": updatedAt}},
	)
}

func (repo *courseRepository) AddCourseTags(ctx context.Context, id string, tags []string, updatedAt time.Time) (int64, error) {
	return repo.update(ctx, bson.M{"courseId": id}, bson.M{
		"$addToSet": bson.M{"tags": bson.M{"$each": tags}},
		"$set":      bson.M{"updatedAt": updatedAt},
	})
}

func (repo *courseRepository) AddCourseRating(ctx context.Context, id string, rating course.Rating) (int64, error) {
	return repo.update(ctx, bson.M{"courseId": id}, bson.M{"$push": bson.M{"ratings": rating}})
}
