package enrollment

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type (
	Repository interface {
		Install(ctx context.Context) error
		CreateEnrollment(ctx context.Context, enr Enrollment) error
		GetEnrollmentByID(ctx context.Context, id string) (Enrollment, error)
		// FindEnrollment looks an enrollment up by its natural key.
		FindEnrollment(ctx context.Context, studentID, courseID string) (Enrollment, error)
		// DeleteEnrollmentByID returns the number of deleted documents.
		DeleteEnrollmentByID(ctx context.Context, id string) (int64, error)
	}

	Service struct {
		repo    Repository
		users   user.Repository
		courses course.Repository
		fake    core.Faker
		log     core.Logger
	}
)

func NewService(repo Repository, users user.Repository, courses course.Repository, fake core.Faker, log core.Logger) *Service {
	return &Service{repo: repo, users: users, courses: courses, fake: fake, log: log}
}

// Seed inserts n generated enrollments of random students in random published courses.
// Pairs that already exist fail individually on the (studentId, courseId) index.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.EnrollmentsCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	students, err := svc.users.QueryUsersByRole(ctx, user.RoleStudent)
	if err != nil {
		return res, err
	}
	courses, err := svc.courses.QueryPublishedCourses(ctx)
	if err != nil {
		return res, err
	}
	var missing []string
	if len(students) == 0 {
		missing = append(missing, "students")
	}
	if len(courses) == 0 {
		missing = append(missing, "published courses")
	}
	if len(missing) > 0 {
		return res, core.NewPrerequisiteError(schema.EnrollmentsCollection, missing...)
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		status := svc.fake.Pick(Statuses)
		enr := Enrollment{
			EnrollmentID: core.NewID(),
			StudentID:    students[svc.fake.IntBetween(0, len(students)-1)].UserID,
			CourseID:     courses[svc.fake.IntBetween(0, len(courses)-1)].CourseID,
			EnrolledAt:   core.Now().Add(-core.Days(svc.fake.IntBetween(1, 30))),
			Progress:     svc.progressFor(status),
			Status:       status,
		}

		err := svc.insert(ctx, enr)
		if err != nil {
			svc.log.Warn("failed to insert enrollment", "entity", schema.EnrollmentsCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("enrolled student", "studentId", enr.StudentID, "courseId", enr.CourseID)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (svc *Service) progressFor(status string) float64 {
	switch status {
	case StatusCompleted:
		return 100
	case StatusInProgress:
		return core.RoundTo(svc.fake.FloatBetween(10, 90), 1)
	default:
		return 0
	}
}

func (svc *Service) insert(ctx context.Context, enr Enrollment) error {
	if err := schema.ValidateValue(schema.Enrollments, enr); err != nil {
		return err
	}
	return svc.repo.CreateEnrollment(ctx, enr)
}

// Enroll registers a student in a published course they are not enrolled in yet.
func (svc *Service) Enroll(ctx context.Context, studentID, courseID string) (Enrollment, error) {
	studentID, err := core.ParseID("studentId", studentID)
	if err != nil {
		return Enrollment{}, err
	}
	courseID, err = core.ParseID("courseId", courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if err := svc.repo.Install(ctx); err != nil {
		return Enrollment{}, err
	}

	usr, err := svc.users.GetUserByID(ctx, studentID)
	if err != nil {
		return Enrollment{}, err
	}
	crs, err := svc.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if !usr.IsStudent() {
		return Enrollment{}, core.NewPreconditionError(usr.Ref(), "not a student")
	}
	if !crs.IsPublished {
		return Enrollment{}, core.NewPreconditionError(crs.Ref(), "course is not published")
	}

	existing, err := svc.repo.FindEnrollment(ctx, studentID, courseID)
	switch {
	case err == nil:
		svc.log.Info("student already enrolled", "studentId", studentID, "courseId", courseID)
		return existing, core.NewPreconditionError(existing.Ref(), "already enrolled")
	case !core.IsNotFound(err):
		return Enrollment{}, err
	}

	enr := Enrollment{
		EnrollmentID: core.NewID(),
		StudentID:    studentID,
		CourseID:     courseID,
		EnrolledAt:   core.Now(),
		Progress:     0,
		Status:       StatusEnrolled,
	}
	if err := svc.insert(ctx, enr); err != nil {
		return Enrollment{}, err
	}
	return enr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Enrollment, error) {
	id, err := core.ParseID("enrollmentId", id)
	if err != nil {
		return Enrollment{}, err
	}
	return svc.repo.GetEnrollmentByID(ctx, id)
}

// Delete removes an enrollment. Nothing else references it.
func (svc *Service) Delete(ctx context.Context, id string) (int64, error) {
	id, err := core.ParseID("enrollmentId", id)
	if err != nil {
		return 0, err
	}
	n, err := svc.repo.DeleteEnrollmentByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, core.NewNotFoundError(core.EnrollmentRef(id))
	}
	return n, nil
}
