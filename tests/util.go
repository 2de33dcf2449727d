package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/services/fixture"
	logsvc "github.com/eduhub/eduhub/services/logger"
	"github.com/eduhub/eduhub/storage/database/inmem"
)

// Env wires every repository and service over a fresh in-memory store.
type Env struct {
	DB   *inmemdb.DB
	Fake *fixture.Generator
	Log  core.Logger

	UserRepo       user.Repository
	CourseRepo     course.Repository
	LessonRepo     lesson.Repository
	AssignmentRepo assignment.Repository
	EnrollmentRepo enrollment.Repository
	SubmissionRepo submission.Repository

	Users       *user.Service
	Courses     *course.Service
	Lessons     *lesson.Service
	Assignments *assignment.Service
	Enrollments *enrollment.Service
	Submissions *submission.Service
	Reports     *report.Service
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	t.Cleanup(db.Drop)

	env := &Env{
		DB:   db,
		Fake: fixture.New(1),
		Log:  logsvc.NewNopLogger(),

		UserRepo:       inmemdb.NewUserRepository(db),
		CourseRepo:     inmemdb.NewCourseRepository(db),
		LessonRepo:     inmemdb.NewLessonRepository(db),
		AssignmentRepo: inmemdb.NewAssignmentRepository(db),
		EnrollmentRepo: inmemdb.NewEnrollmentRepository(db),
		SubmissionRepo: inmemdb.NewSubmissionRepository(db),
	}
	env.Users = user.NewService(env.UserRepo, env.Fake, env.Log)
	env.Courses = course.NewService(env.CourseRepo, env.UserRepo, env.Fake, env.Log)
	env.Lessons = lesson.NewService(env.LessonRepo, env.CourseRepo, env.Fake, env.Log)
	env.Assignments = assignment.NewService(env.AssignmentRepo, env.CourseRepo, env.Fake, env.Log)
	env.Enrollments = enrollment.NewService(env.EnrollmentRepo, env.UserRepo, env.CourseRepo, env.Fake, env.Log)
	env.Submissions = submission.NewService(env.SubmissionRepo, env.UserRepo, env.AssignmentRepo, env.Fake, env.Log)
	env.Reports = report.NewService(inmemdb.NewReportRepository(db), env.Log)

	ctx := context.Background()
	for _, install := range []func(context.Context) error{
		env.UserRepo.Install,
		env.CourseRepo.Install,
		env.LessonRepo.Install,
		env.AssignmentRepo.Install,
		env.EnrollmentRepo.Install,
		env.SubmissionRepo.Install,
	} {
		if err := install(ctx); err != nil {
			t.Fatalf("Install() failed: %v", err)
		}
	}
	return env
}

// FreezeTime pins core.Now to at until the test ends.
func FreezeTime(t *testing.T, at time.Time) {
	t.Helper()
	t.Cleanup(core.SetNowFunc(func() time.Time { return at }))
}

func CreateUser(t *testing.T, env *Env, role string, isActive bool, joined ...time.Time) user.User {
	t.Helper()
	tstamp := core.Now()
	if len(joined) > 0 {
		tstamp = joined[0].UTC().Truncate(time.Millisecond)
	}
	usr := user.User{
		UserID:     core.NewID(),
		Email:      env.Fake.UniqueEmail(),
		FirstName:  env.Fake.FirstName(),
		LastName:   env.Fake.LastName(),
		Role:       role,
		DateJoined: tstamp,
		Profile:    user.Profile{Skills: []string{}},
		IsActive:   isActive,
	}
	if err := env.UserRepo.CreateUser(context.Background(), usr); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CourseOption customizes a course before CreateCourse inserts it.
type CourseOption func(*course.Course)

func WithCategory(category string) CourseOption {
	return func(c *course.Course) { c.Category = category }
}

func WithTitle(title string) CourseOption {
	return func(c *course.Course) { c.Title = title }
}

func WithPrice(price float64) CourseOption {
	return func(c *course.Course) { c.Price = price }
}

func WithTags(tags ...string) CourseOption {
	return func(c *course.Course) { c.Tags = tags }
}

func WithRatings(ratings ...float64) CourseOption {
	return func(c *course.Course) {
		for _, r := range ratings {
			c.Ratings = append(c.Ratings, course.Rating{StudentID: core.NewID(), Rating: r, RatedAt: core.Now()})
		}
	}
}

func CreateCourse(t *testing.T, env *Env, instructorID string, published bool, opts ...CourseOption) course.Course {
	t.Helper()
	now := core.Now()
	crs := course.Course{
		CourseID:     core.NewID(),
		Title:        env.Fake.Sentence(4),
		Description:  env.Fake.Paragraph(2),
		InstructorID: instructorID,
		Category:     course.Categories[0],
		Level:        course.LevelBeginner,
		Duration:     10,
		Price:        50,
		Tags:         []string{},
		Ratings:      []course.Rating{},
		CreatedAt:    now,
		UpdatedAt:    now,
		IsPublished:  published,
	}
	for _, opt := range opts {
		opt(&crs)
	}
	if err := env.CourseRepo.CreateCourse(context.Background(), crs); err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateAssignment(t *testing.T, env *Env, courseID string, dueDate time.Time, maxScore int32) assignment.Assignment {
	t.Helper()
	dueDate = dueDate.UTC().Truncate(time.Millisecond)
	asg := assignment.Assignment{
		AssignmentID: core.NewID(),
		CourseID:     courseID,
		Title:        env.Fake.Sentence(3),
		Description:  env.Fake.Paragraph(1),
		CreatedAt:    dueDate.Add(-core.Days(14)),
		DueDate:      dueDate,
		MaxScore:     maxScore,
	}
	if err := env.AssignmentRepo.CreateAssignment(context.Background(), asg); err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func CreateEnrollment(t *testing.T, env *Env, studentID, courseID, status string, enrolledAt ...time.Time) enrollment.Enrollment {
	t.Helper()
	tstamp := core.Now()
	if len(enrolledAt) > 0 {
		tstamp = enrolledAt[0].UTC().Truncate(time.Millisecond)
	}
	var progress float64
	switch status {
	case enrollment.StatusCompleted:
		progress = 100
	case enrollment.StatusInProgress:
		progress = 50
	}
	enr := enrollment.Enrollment{
		EnrollmentID: core.NewID(),
		StudentID:    studentID,
		CourseID:     courseID,
		EnrolledAt:   tstamp,
		Progress:     progress,
		Status:       status,
	}
	if err := env.EnrollmentRepo.CreateEnrollment(context.Background(), enr); err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}

// CreateSubmission inserts a submission, graded with score unless score is negative.
func CreateSubmission(t *testing.T, env *Env, assignmentID, studentID string, score int32) submission.Submission {
	t.Helper()
	sub := submission.Submission{
		SubmissionID: core.NewID(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		SubmittedAt:  core.Now(),
		Feedback:     submission.NoFeedback,
	}
	if score >= 0 {
		gradedAt := core.Now()
		sub.GradedAt = &gradedAt
		sub.Score = score
		sub.Feedback = "Good work"
		sub.IsGraded = true
	}
	if err := env.SubmissionRepo.CreateSubmission(context.Background(), sub); err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
