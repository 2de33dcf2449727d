package inmemdb

import (
	"context"
	"sort"

	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/schema"
)

type lessonRepository struct {
	db   *DB
	coll *collection
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db, coll: db.collection(schema.LessonsCollection)}
}

func lessonsOf(courseID string) func(lesson.Lesson) bool {
	return func(l lesson.Lesson) bool { return l.CourseID == courseID }
}

func (repo *lessonRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Lessons)
}

func (repo *lessonRepository) CreateLesson(_ context.Context, lsn lesson.Lesson) error {
	return repo.coll.insert(lsn)
}

func (repo *lessonRepository) LastLessonPosition(_ context.Context, courseID string) (int32, error) {
	lessons, err := findDocs(repo.coll, lessonsOf(courseID))
	if err != nil {
		return 0, err
	}
	var last int32
	for _, l := range lessons {
		if l.Position > last {
			last = l.Position
		}
	}
	return last, nil
}

func (repo *lessonRepository) QueryLessonsByCourse(_ context.Context, courseID string) ([]lesson.Lesson, error) {
	lessons, err := findDocs(repo.coll, lessonsOf(courseID))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Position < lessons[j].Position })
	return lessons, nil
}

func (repo *lessonRepository) DeleteLessonByID(_ context.Context, id string) (int64, error) {
	return deleteOne(repo.coll, func(l lesson.Lesson) bool { return l.LessonID == id })
}
