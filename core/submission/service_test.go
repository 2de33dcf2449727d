package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/tests"
)

func TestService_Seed(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	_, err := env.Submissions.Seed(ctx, 3)
	var pErr *core.PrerequisiteError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, []string{"students", "assignments"}, pErr.Missing)

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	testutil.CreateAssignment(t, env, crs.CourseID, core.Now().Add(core.Days(7)), 100)

	res, err := env.Submissions.Seed(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Inserted)

	grades, err := env.Reports.StudentEngagement(ctx)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, student.UserID, grades[0].StudentID)
	assert.Equal(t, 12, grades[0].Submissions)
	if avg := grades[0].AverageScore; avg != 0 && (avg < 50 || avg > 100) {
		t.Errorf("average of seeded scores = %v", avg)
	}
}

func TestService_Submit(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	asg := testutil.CreateAssignment(t, env, crs.CourseID, core.Now().Add(core.Days(7)), 100)

	sub, err := env.Submissions.Submit(ctx, submission.NewSubmission{AssignmentID: asg.AssignmentID, StudentID: student.UserID})
	require.NoError(t, err)
	assert.False(t, sub.IsGraded)
	assert.Nil(t, sub.GradedAt)
	assert.Equal(t, submission.NoFeedback, sub.Feedback)

	_, err = env.Submissions.Submit(ctx, submission.NewSubmission{AssignmentID: asg.AssignmentID, StudentID: instructor.UserID})
	assert.True(t, core.IsPrecondition(err), "got %v", err)

	_, err = env.Submissions.Submit(ctx, submission.NewSubmission{AssignmentID: core.NewID(), StudentID: student.UserID})
	assert.True(t, core.IsNotFound(err), "got %v", err)
}

func TestService_Grade(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	testutil.FreezeTime(t, now)

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	asg := testutil.CreateAssignment(t, env, crs.CourseID, now.Add(core.Days(7)), 80)
	sub := testutil.CreateSubmission(t, env, asg.AssignmentID, student.UserID, -1)

	tests := []struct {
		name    string
		id      string
		grade   submission.Grade
		wantErr func(error) bool
	}{
		{"above max score", sub.SubmissionID, submission.Grade{Score: 81}, core.IsValidation},
		{"negative", sub.SubmissionID, submission.Grade{Score: -1}, core.IsValidation},
		{"unknown submission", core.NewID(), submission.Grade{Score: 10}, core.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := env.Submissions.Grade(ctx, tt.id, tt.grade)
			assert.Zero(t, n)
			if !tt.wantErr(err) {
				t.Errorf("Grade() unexpected error: %v", err)
			}
		})
	}

	n, err := env.Submissions.Grade(ctx, sub.SubmissionID, submission.Grade{Score: 80, Feedback: " Excellent "})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := env.Submissions.GetByID(ctx, sub.SubmissionID)
	require.NoError(t, err)
	assert.True(t, got.IsGraded)
	assert.EqualValues(t, 80, got.Score)
	assert.Equal(t, "Excellent", got.Feedback)
	require.NotNil(t, got.GradedAt)
	assert.True(t, got.GradedAt.Equal(now))
}

func TestAverageGrade(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	student := testutil.CreateUser(t, env, user.RoleStudent, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)
	asg := testutil.CreateAssignment(t, env, crs.CourseID, core.Now().Add(core.Days(7)), 100)

	testutil.CreateSubmission(t, env, asg.AssignmentID, student.UserID, 80)
	testutil.CreateSubmission(t, env, asg.AssignmentID, student.UserID, 100)
	testutil.CreateSubmission(t, env, asg.AssignmentID, student.UserID, -1) // ungraded, ignored

	grades, err := env.Reports.AverageGradePerStudent(ctx)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, student.UserID, grades[0].StudentID)
	assert.Equal(t, 90.0, grades[0].AverageScore)
	assert.Equal(t, 2, grades[0].Graded)
}
