package inmemdb

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/schema"
)

type courseRepository struct {
	db   *DB
	coll *collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db, coll: db.collection(schema.CoursesCollection)}
}

func byCourseID(id string) func(course.Course) bool {
	return func(c course.Course) bool { return c.CourseID == id }
}

func (repo *courseRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Courses)
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) error {
	return repo.coll.insert(crs)
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	return findOne(repo.coll, core.CourseRef(id), byCourseID(id))
}

func (repo *courseRepository) QueryAllCourses(context.Context) ([]course.Course, error) {
	return findDocs[course.Course](repo.coll, nil)
}

func (repo *courseRepository) QueryPublishedCourses(context.Context) ([]course.Course, error) {
	return findDocs(repo.coll, func(c course.Course) bool { return c.IsPublished })
}

func (repo *courseRepository) PublishCourse(_ context.Context, id string, updatedAt time.Time) (int64, error) {
	unpublished := func(c course.Course) bool { return c.CourseID == id && !c.IsPublished }
	return updateOne(repo.coll, unpublished, func(c *course.Course) {
		c.IsPublished = true
		c.UpdatedAt = updatedAt
	})
}

func (repo *courseRepository) AddCourseTags(_ context.Context, id string, tags []string, updatedAt time.Time) (int64, error) {
	return updateOne(repo.coll, byCourseID(id), func(c *course.Course) {
		for _, tag := range tags {
			if !contains(c.Tags, tag) {
				c.Tags = append(c.Tags, tag)
			}
		}
		c.UpdatedAt = updatedAt
	})
}

func (repo *courseRepository) AddCourseRating(_ context.Context, id string, rating course.Rating) (int64, error) {
	return updateOne(repo.coll, byCourseID(id), func(c *course.Course) {
		c.Ratings = append(c.Ratings, rating)
	})
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
