package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/tests"
)

var now = time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)

func TestService_users(t *testing.T) {
	env := testutil.NewEnv(t)
	testutil.FreezeTime(t, now)
	ctx := context.Background()

	active := testutil.CreateUser(t, env, user.RoleStudent, true, now.AddDate(0, 0, -20))
	testutil.CreateUser(t, env, user.RoleStudent, false, now.AddDate(-1, 0, 0))
	testutil.CreateUser(t, env, user.RoleInstructor, true, now.AddDate(0, -2, 0))

	students, err := env.Reports.ActiveStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, active.UserID, students[0].UserID)

	recent, err := env.Reports.RecentUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	recent, err = env.Reports.RecentUsers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, active.UserID, recent[0].UserID)

	_, err = env.Reports.RecentUsers(ctx, -3)
	assert.True(t, core.IsValidation(err), "got %v", err)
}

func TestService_grades(t *testing.T) {
	env := testutil.NewEnv(t)
	testutil.FreezeTime(t, now)
	ctx := context.Background()

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	asg := testutil.CreateAssignment(t, env, crs.CourseID, now.Add(core.Days(3)), 100)

	var students []user.User
	for i := 0; i < 4; i++ {
		students = append(students, testutil.CreateUser(t, env, user.RoleStudent, true))
	}
	scores := [][]int32{
		{70, 71, -1},     // 70.5
		{95},             // 95
		{80, 100},        // 90
		{-1, -1, -1, -1}, // ungraded only
	}
	for i, ss := range scores {
		for _, s := range ss {
			testutil.CreateSubmission(t, env, asg.AssignmentID, students[i].UserID, s)
		}
	}

	grades, err := env.Reports.AverageGradePerStudent(ctx)
	require.NoError(t, err)
	require.Len(t, grades, 3)
	assert.Equal(t, []string{students[1].UserID, students[2].UserID, students[0].UserID},
		[]string{grades[0].StudentID, grades[1].StudentID, grades[2].StudentID})
	assert.Equal(t, 70.5, grades[2].AverageScore)

	top, err := env.Reports.TopPerformingStudents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, students[1].UserID, top[0].StudentID)
	assert.Equal(t, students[1].FirstName, top[0].FirstName)
	assert.Equal(t, 2, top[1].Submissions)

	_, err = env.Reports.TopPerformingStudents(ctx, -1)
	assert.True(t, core.IsValidation(err), "got %v", err)

	engagement, err := env.Reports.StudentEngagement(ctx)
	require.NoError(t, err)
	require.Len(t, engagement, 4)
	assert.Equal(t, students[3].UserID, engagement[0].StudentID)
	assert.Equal(t, 4, engagement[0].Submissions)
	assert.Zero(t, engagement[0].AverageScore)
	assert.Equal(t, students[3].FullName(), engagement[0].Name)
	assert.Equal(t, 3, engagement[1].Submissions)
	assert.Equal(t, 70.5, engagement[1].AverageScore)
}

func TestService_courses(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env, user.RoleInstructor, true)
	bob := testutil.CreateUser(t, env, user.RoleInstructor, true)
	python := testutil.CreateCourse(t, env, alice.UserID, true,
		testutil.WithTitle("Python for Data Analysis"),
		testutil.WithCategory("Data Science"),
		testutil.WithPrice(49.99),
		testutil.WithTags("Python", "Pandas"),
		testutil.WithRatings(4, 5),
	)
	react := testutil.CreateCourse(t, env, alice.UserID, true,
		testutil.WithTitle("React (2024 edition)"),
		testutil.WithCategory("Web Development"),
		testutil.WithPrice(120),
		testutil.WithTags("React"),
		testutil.WithRatings(3),
	)
	k8s := testutil.CreateCourse(t, env, bob.UserID, false,
		testutil.WithTitle("Kubernetes in production"),
		testutil.WithCategory("Data Science"),
		testutil.WithPrice(200),
		testutil.WithTags("Kubernetes"),
	)
	// orphan course: dropped by the instructor join
	testutil.CreateCourse(t, env, core.NewID(), false, testutil.WithCategory("Finance"), testutil.WithPrice(10))

	withInstructor, err := env.Reports.CoursesWithInstructor(ctx)
	require.NoError(t, err)
	assert.Len(t, withInstructor, 3)

	byCategory, err := env.Reports.CoursesByCategory(ctx, " Data Science ")
	require.NoError(t, err)
	assert.Equal(t, []string{python.CourseID, k8s.CourseID}, courseIDs(byCategory))

	_, err = env.Reports.CoursesByCategory(ctx, " ")
	assert.True(t, core.IsValidation(err), "got %v", err)

	byTitle, err := env.Reports.SearchCoursesByTitle(ctx, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{python.CourseID}, courseIDs(byTitle))

	byTitle, err = env.Reports.SearchCoursesByTitle(ctx, "(2024")
	require.NoError(t, err)
	assert.Equal(t, []string{react.CourseID}, courseIDs(byTitle))

	inRange, err := env.Reports.CoursesInPriceRange(ctx, report.DefaultMinPrice, report.DefaultMaxPrice)
	require.NoError(t, err)
	assert.Equal(t, []string{react.CourseID, k8s.CourseID}, courseIDs(inRange))

	_, err = env.Reports.CoursesInPriceRange(ctx, 100, 50)
	assert.True(t, core.IsValidation(err), "got %v", err)

	byTags, err := env.Reports.CoursesByTags(ctx, []string{"Pandas", "Kubernetes"})
	require.NoError(t, err)
	assert.Equal(t, []string{python.CourseID, k8s.CourseID}, courseIDs(byTags))

	ratings, err := env.Reports.AverageCourseRating(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, python.CourseID, ratings[0].CourseID)
	assert.Equal(t, 4.5, ratings[0].AverageRating)
	assert.Equal(t, 2, ratings[0].Ratings)

	perCategory, err := env.Reports.CoursesPerCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.CategoryCount{
		{Category: "Data Science", Count: 2},
		{Category: "Finance", Count: 1},
		{Category: "Web Development", Count: 1},
	}, perCategory)

	perInstructor, err := env.Reports.AverageRatingPerInstructor(ctx)
	require.NoError(t, err)
	require.Len(t, perInstructor, 1)
	assert.Equal(t, alice.UserID, perInstructor[0].InstructorID)
	assert.Equal(t, 4.0, perInstructor[0].AverageRating)
	assert.Equal(t, 3, perInstructor[0].Ratings)
}

func courseIDs(rows []report.CourseSummary) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CourseID)
	}
	return ids
}

func TestService_UpcomingAssignments(t *testing.T) {
	env := testutil.NewEnv(t)
	testutil.FreezeTime(t, now)
	ctx := context.Background()

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	later := testutil.CreateAssignment(t, env, crs.CourseID, now.Add(core.Days(5)), 100)
	sooner := testutil.CreateAssignment(t, env, crs.CourseID, now.Add(core.Days(1)), 100)
	testutil.CreateAssignment(t, env, crs.CourseID, now.Add(core.Days(10)), 100)
	testutil.CreateAssignment(t, env, crs.CourseID, now.Add(-core.Days(1)), 100)

	upcoming, err := env.Reports.UpcomingAssignments(ctx, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, sooner.AssignmentID, upcoming[0].AssignmentID)
	assert.Equal(t, later.AssignmentID, upcoming[1].AssignmentID)

	upcoming, err = env.Reports.UpcomingAssignments(ctx, 14*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)

	_, err = env.Reports.UpcomingAssignments(ctx, -time.Hour)
	assert.True(t, core.IsValidation(err), "got %v", err)
}

func TestService_enrollments(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env, user.RoleInstructor, true)
	bob := testutil.CreateUser(t, env, user.RoleInstructor, true)
	data := testutil.CreateCourse(t, env, alice.UserID, true, testutil.WithCategory("Data Science"), testutil.WithPrice(49.99))
	web := testutil.CreateCourse(t, env, alice.UserID, true, testutil.WithCategory("Web Development"), testutil.WithPrice(100))
	ops := testutil.CreateCourse(t, env, bob.UserID, true, testutil.WithCategory("DevOps"), testutil.WithPrice(30.5))
	empty := testutil.CreateCourse(t, env, bob.UserID, true)

	var students []user.User
	for i := 0; i < 3; i++ {
		students = append(students, testutil.CreateUser(t, env, user.RoleStudent, true))
	}
	jan := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateEnrollment(t, env, students[0].UserID, data.CourseID, enrollment.StatusCompleted, jan)
	testutil.CreateEnrollment(t, env, students[1].UserID, data.CourseID, enrollment.StatusCompleted, feb)
	testutil.CreateEnrollment(t, env, students[2].UserID, data.CourseID, enrollment.StatusInProgress, feb)
	testutil.CreateEnrollment(t, env, students[0].UserID, web.CourseID, enrollment.StatusEnrolled, feb)
	testutil.CreateEnrollment(t, env, students[0].UserID, ops.CourseID, enrollment.StatusCompleted, jan)

	perCourse, err := env.Reports.EnrollmentsPerCourse(ctx)
	require.NoError(t, err)
	require.Len(t, perCourse, 3)
	assert.Equal(t, report.CourseEnrollments{CourseID: data.CourseID, Enrollments: 3}, perCourse[0])

	rate, err := env.Reports.CourseCompletionRate(ctx, data.CourseID)
	require.NoError(t, err)
	assert.Equal(t, report.CompletionRate{CourseID: data.CourseID, Total: 3, Completed: 2, Rate: 66.7}, rate)

	rate, err = env.Reports.CourseCompletionRate(ctx, empty.CourseID)
	require.NoError(t, err)
	assert.Equal(t, report.CompletionRate{CourseID: empty.CourseID}, rate)

	_, err = env.Reports.CourseCompletionRate(ctx, core.NewID())
	assert.True(t, core.IsNotFound(err), "got %v", err)

	rates, err := env.Reports.CompletionRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, ops.CourseID, rates[0].CourseID)
	assert.Equal(t, 100.0, rates[0].Rate)
	assert.Equal(t, 0.0, rates[2].Rate)

	popular, err := env.Reports.PopularCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.CategoryCount{Category: "Data Science", Count: 3}, popular[0])

	perInstructor, err := env.Reports.StudentsPerInstructor(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.InstructorStudents{
		{InstructorID: alice.UserID, Students: 3},
		{InstructorID: bob.UserID, Students: 1},
	}, perInstructor)

	revenue, err := env.Reports.RevenuePerInstructor(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, alice.UserID, revenue[0].InstructorID)
	assert.Equal(t, 249.97, revenue[0].Revenue)
	assert.Equal(t, 4, revenue[0].Enrollments)
	assert.Equal(t, 30.5, revenue[1].Revenue)

	trends, err := env.Reports.MonthlyEnrollmentTrends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.MonthlyEnrollments{
		{Year: 2024, Month: 1, Enrollments: 2},
		{Year: 2024, Month: 2, Enrollments: 3},
	}, trends)
}
