package enrollment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/tests"
)

func TestService_Seed(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	t.Run("nothing to enroll", func(t *testing.T) {
		_, err := env.Enrollments.Seed(ctx, 5)
		var pErr *core.PrerequisiteError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, []string{"students", "published courses"}, pErr.Missing)
	})

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	draft := testutil.CreateCourse(t, env, instructor.UserID, false)
	for i := 0; i < 4; i++ {
		testutil.CreateUser(t, env, user.RoleStudent, true)
	}

	t.Run("no published course", func(t *testing.T) {
		_, err := env.Enrollments.Seed(ctx, 5)
		var pErr *core.PrerequisiteError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, []string{"published courses"}, pErr.Missing)
	})

	published := []string{
		testutil.CreateCourse(t, env, instructor.UserID, true).CourseID,
		testutil.CreateCourse(t, env, instructor.UserID, true).CourseID,
	}

	t.Run("ok", func(t *testing.T) {
		// 4 students x 2 courses leaves room for 8 pairs; the rest fail individually
		res, err := env.Enrollments.Seed(ctx, 15)
		require.NoError(t, err)
		assert.Equal(t, 15, res.Attempted)
		assert.LessOrEqual(t, res.Inserted, 8)
		assert.Equal(t, res.Attempted, res.Inserted+res.Failed())
		for _, fErr := range res.Failures {
			assert.True(t, core.IsDuplicateKey(fErr), "got %v", fErr)
		}

		rates, err := env.Reports.EnrollmentsPerCourse(ctx)
		require.NoError(t, err)
		var total int
		for _, r := range rates {
			assert.NotEqual(t, draft.CourseID, r.CourseID)
			assert.Contains(t, published, r.CourseID)
			total += r.Enrollments
		}
		assert.Equal(t, res.Inserted, total)
	})
}

func TestService_Enroll(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, false)

	// enrolling before publication is refused and writes nothing
	_, err := env.Enrollments.Enroll(ctx, student.UserID, crs.CourseID)
	var pErr *core.PreconditionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "course is not published", pErr.Reason)

	_, err = env.Courses.Publish(ctx, crs.CourseID)
	require.NoError(t, err)

	enr, err := env.Enrollments.Enroll(ctx, student.UserID, crs.CourseID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusEnrolled, enr.Status)
	assert.Zero(t, enr.Progress)

	got, err := env.Enrollments.GetByID(ctx, enr.EnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, enr.StudentID, got.StudentID)

	_, err = env.Enrollments.Enroll(ctx, student.UserID, crs.CourseID)
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "already enrolled", pErr.Reason)

	students, err := env.Reports.StudentsInCourse(ctx, crs.CourseID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.UserID, students[0].UserID)
	assert.Equal(t, enrollment.StatusEnrolled, students[0].Status)

	tests := []struct {
		name      string
		studentID string
		courseID  string
		wantErr   func(error) bool
	}{
		{"unknown student", core.NewID(), crs.CourseID, core.IsNotFound},
		{"unknown course", student.UserID, core.NewID(), core.IsNotFound},
		{"instructor", instructor.UserID, crs.CourseID, core.IsPrecondition},
		{"malformed id", "abc", crs.CourseID, core.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Enrollments.Enroll(ctx, tt.studentID, tt.courseID)
			if !tt.wantErr(err) {
				t.Errorf("Enroll() unexpected error: %v", err)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	enr := testutil.CreateEnrollment(t, env, student.UserID, crs.CourseID, enrollment.StatusInProgress)

	n, err := env.Enrollments.Delete(ctx, enr.EnrollmentID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = env.Enrollments.Delete(ctx, enr.EnrollmentID)
	assert.True(t, core.IsNotFound(err), "got %v", err)

	// the pair is free again
	_, err = env.Enrollments.Enroll(ctx, student.UserID, crs.CourseID)
	assert.NoError(t, err)
}
