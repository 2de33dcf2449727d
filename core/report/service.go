package report

import (
	"context"
	"fmt"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/eduhub/eduhub/core"
)

// Defaults of the report parameters.
const (
	DefaultRecentMonths = 6
	DefaultTopLimit     = 5
	DefaultMinPrice     = 50
	DefaultMaxPrice     = 200
	DefaultDueWindow    = 7 * 24 * time.Hour
)

type (
	// Repository computes the reports over a store. Rows come back sorted as documented on Service.
	Repository interface {
		ActiveStudents(ctx context.Context) ([]Student, error)
		StudentsInCourse(ctx context.Context, courseID string) ([]CourseStudent, error)
		UsersJoinedSince(ctx context.Context, since time.Time) ([]RecentUser, error)
		AverageGradePerStudent(ctx context.Context) ([]StudentGrade, error)
		TopPerformingStudents(ctx context.Context, limit int) ([]TopStudent, error)
		StudentEngagement(ctx context.Context) ([]Engagement, error)

		CoursesWithInstructor(ctx context.Context) ([]CourseInstructor, error)
		CoursesByCategory(ctx context.Context, category string) ([]CourseSummary, error)
		// CoursesByTitle matches title case-insensitively on a literal substring.
		CoursesByTitle(ctx context.Context, query string) ([]CourseSummary, error)
		CoursesInPriceRange(ctx context.Context, min, max float64) ([]CourseSummary, error)
		CoursesByTags(ctx context.Context, tags []string) ([]CourseSummary, error)
		AverageCourseRating(ctx context.Context) ([]CourseRating, error)
		CoursesPerCategory(ctx context.Context) ([]CategoryCount, error)
		AverageRatingPerInstructor(ctx context.Context) ([]InstructorRating, error)
		PopularCategories(ctx context.Context) ([]CategoryCount, error)

		AssignmentsDueBetween(ctx context.Context, from, to time.Time) ([]UpcomingAssignment, error)

		EnrollmentsPerCourse(ctx context.Context) ([]CourseEnrollments, error)
		CourseExists(ctx context.Context, courseID string) (bool, error)
		// CompletionRates only lists courses that have enrollments.
		CompletionRates(ctx context.Context, courseIDs ...string) ([]CompletionRate, error)
		StudentsPerInstructor(ctx context.Context) ([]InstructorStudents, error)
		RevenuePerInstructor(ctx context.Context) ([]InstructorRevenue, error)
		MonthlyEnrollmentTrends(ctx context.Context) ([]MonthlyEnrollments, error)
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func invalid(err error, field string) error {
	return core.NewValidationError(
		errors.Wrap(err, "invalid report parameters"),
		core.FieldError{Field: field, Error: err.Error()},
	)
}

func nonNegative(x float64, name string) vala.Checker {
	return func() (bool, string) {
		return x >= 0, fmt.Sprintf("parameter %s must not be negative", name)
	}
}

// ActiveStudents lists active users with the student role.
func (svc *Service) ActiveStudents(ctx context.Context) ([]Student, error) {
	return svc.repo.ActiveStudents(ctx)
}

// StudentsInCourse lists the students enrolled in a course with their enrollment status.
func (svc *Service) StudentsInCourse(ctx context.Context, courseID string) ([]CourseStudent, error) {
	courseID, err := core.ParseID("courseId", courseID)
	if err != nil {
		return nil, err
	}
	return svc.repo.StudentsInCourse(ctx, courseID)
}

// RecentUsers lists users who joined in the last `months` 30-day months.
func (svc *Service) RecentUsers(ctx context.Context, months int) ([]RecentUser, error) {
	if months == 0 {
		months = DefaultRecentMonths
	}
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(months, 0, "months"),
	).Check(); err != nil {
		return nil, invalid(err, "months")
	}
	since := core.Now().Add(-core.Days(30 * months))
	return svc.repo.UsersJoinedSince(ctx, since)
}

// AverageGradePerStudent averages graded scores per student, best average first.
func (svc *Service) AverageGradePerStudent(ctx context.Context) ([]StudentGrade, error) {
	return svc.repo.AverageGradePerStudent(ctx)
}

// TopPerformingStudents keeps the `limit` best averages and attaches the students' names.
func (svc *Service) TopPerformingStudents(ctx context.Context, limit int) ([]TopStudent, error) {
	if limit == 0 {
		limit = DefaultTopLimit
	}
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(limit, 0, "limit"),
	).Check(); err != nil {
		return nil, invalid(err, "limit")
	}
	return svc.repo.TopPerformingStudents(ctx, limit)
}

// StudentEngagement counts submissions per student, most active first.
func (svc *Service) StudentEngagement(ctx context.Context) ([]Engagement, error) {
	return svc.repo.StudentEngagement(ctx)
}

func (svc *Service) CoursesWithInstructor(ctx context.Context) ([]CourseInstructor, error) {
	return svc.repo.CoursesWithInstructor(ctx)
}

func (svc *Service) CoursesByCategory(ctx context.Context, category string) ([]CourseSummary, error) {
	category = core.CleanString(category)
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(category, "category"),
	).Check(); err != nil {
		return nil, invalid(err, "category")
	}
	return svc.repo.CoursesByCategory(ctx, category)
}

// SearchCoursesByTitle does a case-insensitive partial match on course titles.
func (svc *Service) SearchCoursesByTitle(ctx context.Context, query string) ([]CourseSummary, error) {
	query = core.CleanString(query)
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(query, "query"),
	).Check(); err != nil {
		return nil, invalid(err, "query")
	}
	return svc.repo.CoursesByTitle(ctx, query)
}

// CoursesInPriceRange lists courses priced within [min, max].
func (svc *Service) CoursesInPriceRange(ctx context.Context, min, max float64) ([]CourseSummary, error) {
	if err := vala.BeginValidation().Validate(
		nonNegative(min, "min"),
		func() (bool, string) {
			return max >= min, "parameter max must not be lower than min"
		},
	).Check(); err != nil {
		return nil, invalid(err, "price")
	}
	return svc.repo.CoursesInPriceRange(ctx, min, max)
}

// CoursesByTags lists courses carrying any of the tags.
func (svc *Service) CoursesByTags(ctx context.Context, tags []string) ([]CourseSummary, error) {
	tags = core.CleanStrings(tags)
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(len(tags), 0, "tags"),
	).Check(); err != nil {
		return nil, invalid(err, "tags")
	}
	return svc.repo.CoursesByTags(ctx, tags)
}

// AverageCourseRating averages the ratings of every rated course, best first.
func (svc *Service) AverageCourseRating(ctx context.Context) ([]CourseRating, error) {
	return svc.repo.AverageCourseRating(ctx)
}

func (svc *Service) CoursesPerCategory(ctx context.Context) ([]CategoryCount, error) {
	return svc.repo.CoursesPerCategory(ctx)
}

func (svc *Service) AverageRatingPerInstructor(ctx context.Context) ([]InstructorRating, error) {
	return svc.repo.AverageRatingPerInstructor(ctx)
}

// PopularCategories counts enrollments per course category.
func (svc *Service) PopularCategories(ctx context.Context) ([]CategoryCount, error) {
	return svc.repo.PopularCategories(ctx)
}

// UpcomingAssignments lists assignments due between now and now+window.
func (svc *Service) UpcomingAssignments(ctx context.Context, window time.Duration) ([]UpcomingAssignment, error) {
	if window == 0 {
		window = DefaultDueWindow
	}
	if err := vala.BeginValidation().Validate(
		nonNegative(float64(window), "window"),
	).Check(); err != nil {
		return nil, invalid(err, "window")
	}
	now := core.Now()
	return svc.repo.AssignmentsDueBetween(ctx, now, now.Add(window))
}

func (svc *Service) EnrollmentsPerCourse(ctx context.Context) ([]CourseEnrollments, error) {
	return svc.repo.EnrollmentsPerCourse(ctx)
}

// CompletionRates reports the completion rate of every course with enrollments, highest first.
func (svc *Service) CompletionRates(ctx context.Context) ([]CompletionRate, error) {
	return svc.repo.CompletionRates(ctx)
}

// CourseCompletionRate reports the completion rate of one course; 0 when it has no enrollments.
func (svc *Service) CourseCompletionRate(ctx context.Context, courseID string) (CompletionRate, error) {
	courseID, err := core.ParseID("courseId", courseID)
	if err != nil {
		return CompletionRate{}, err
	}
	exists, err := svc.repo.CourseExists(ctx, courseID)
	if err != nil {
		return CompletionRate{}, err
	}
	if !exists {
		return CompletionRate{}, core.NewNotFoundError(core.CourseRef(courseID))
	}
	rates, err := svc.repo.CompletionRates(ctx, courseID)
	if err != nil {
		return CompletionRate{}, err
	}
	for _, r := range rates {
		if r.CourseID == courseID {
			return r, nil
		}
	}
	svc.log.Debug("course has no enrollments", "courseId", courseID)
	return CompletionRate{CourseID: courseID}, nil
}

// StudentsPerInstructor counts distinct students enrolled in each instructor's courses.
func (svc *Service) StudentsPerInstructor(ctx context.Context) ([]InstructorStudents, error) {
	return svc.repo.StudentsPerInstructor(ctx)
}

// RevenuePerInstructor sums the course price of every enrollment per instructor.
func (svc *Service) RevenuePerInstructor(ctx context.Context) ([]InstructorRevenue, error) {
	return svc.repo.RevenuePerInstructor(ctx)
}

// MonthlyEnrollmentTrends counts enrollments per calendar month (UTC), oldest first.
func (svc *Service) MonthlyEnrollmentTrends(ctx context.Context) ([]MonthlyEnrollments, error) {
	return svc.repo.MonthlyEnrollmentTrends(ctx)
}
