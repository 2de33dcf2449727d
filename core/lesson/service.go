package lesson

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/schema"
)

type (
	Repository interface {
		Install(ctx context.Context) error
		CreateLesson(ctx context.Context, lsn Lesson) error
		// LastLessonPosition returns the highest position used in a course, 0 when it has no lessons.
		LastLessonPosition(ctx context.Context, courseID string) (int32, error)
		// QueryLessonsByCourse returns the lessons of a course ordered by position.
		QueryLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error)
		// DeleteLessonByID returns the number of deleted documents.
		DeleteLessonByID(ctx context.Context, id string) (int64, error)
	}

	Service struct {
		repo    Repository
		courses course.Repository
		fake    core.Faker
		log     core.Logger
	}
)

func NewService(repo Repository, courses course.Repository, fake core.Faker, log core.Logger) *Service {
	return &Service{repo: repo, courses: courses, fake: fake, log: log}
}

// seedAttemptsPerLesson bounds the retries of Seed when inserts keep failing.
const seedAttemptsPerLesson = 3

// Seed inserts n generated lessons, each appended to a random course.
// Failed inserts are retried with another course until n lessons are in,
// giving up after seedAttemptsPerLesson*n attempts.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.LessonsCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return res, err
	}
	if len(courses) == 0 {
		return res, core.NewPrerequisiteError(schema.LessonsCollection, "courses")
	}

	start := time.Now()
	for res.Inserted < n && res.Attempted < seedAttemptsPerLesson*n {
		crs := courses[svc.fake.IntBetween(0, len(courses)-1)]
		lsn, err := svc.append(ctx, crs.CourseID, svc.fake.Sentence(5), "", 0)
		if err != nil {
			svc.log.Warn("failed to insert lesson", "entity", schema.LessonsCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("inserted lesson", "courseId", lsn.CourseID, "position", lsn.Position)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// AddToCourse appends a lesson at the next position of an existing course.
func (svc *Service) AddToCourse(ctx context.Context, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(); err != nil {
		return Lesson{}, err
	}
	if _, err := svc.courses.GetCourseByID(ctx, nl.CourseID); err != nil {
		return Lesson{}, err
	}
	if err := svc.repo.Install(ctx); err != nil {
		return Lesson{}, err
	}
	return svc.append(ctx, nl.CourseID, nl.Title, nl.Content, nl.Duration)
}

// append places the lesson after the last one of the course.
// Remaining lessons are never renumbered after a deletion.
func (svc *Service) append(ctx context.Context, courseID, title, content string, duration int32) (Lesson, error) {
	last, err := svc.repo.LastLessonPosition(ctx, courseID)
	if err != nil {
		return Lesson{}, err
	}
	if content == "" {
		content = svc.fake.Paragraph(5)
	}
	if duration == 0 {
		duration = int32(svc.fake.IntBetween(5, 20))
	}

	now := core.Now()
	lsn := Lesson{
		LessonID:  core.NewID(),
		CourseID:  courseID,
		Title:     title,
		Content:   content,
		Duration:  duration,
		Position:  last + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := schema.ValidateValue(schema.Lessons, lsn); err != nil {
		return Lesson{}, err
	}
	if err := svc.repo.CreateLesson(ctx, lsn); err != nil {
		return Lesson{}, err
	}
	return lsn, nil
}

func (svc *Service) ListByCourse(ctx context.Context, courseID string) ([]Lesson, error) {
	courseID, err := core.ParseID("courseId", courseID)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryLessonsByCourse(ctx, courseID)
}

// Delete removes a lesson. The remaining lessons keep their positions.
func (svc *Service) Delete(ctx context.Context, id string) (int64, error) {
	id, err := core.ParseID("lessonId", id)
	if err != nil {
		return 0, err
	}
	n, err := svc.repo.DeleteLessonByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, core.NewNotFoundError(core.LessonRef(id))
	}
	return n, nil
}
