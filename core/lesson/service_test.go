package lesson_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/tests"
)

func TestService_Seed(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	_, err := env.Lessons.Seed(ctx, 5)
	assert.True(t, core.IsPrerequisite(err), "got %v", err)

	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	courses := []string{
		testutil.CreateCourse(t, env, instructor.UserID, true).CourseID,
		testutil.CreateCourse(t, env, instructor.UserID, false).CourseID,
		testutil.CreateCourse(t, env, instructor.UserID, true).CourseID,
	}

	res, err := env.Lessons.Seed(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Inserted)

	var total int
	for _, id := range courses {
		lessons, err := env.Lessons.ListByCourse(ctx, id)
		require.NoError(t, err)
		total += len(lessons)
		for i, lsn := range lessons {
			if lsn.Position != int32(i+1) {
				t.Errorf("course %s: lesson %d has position %d", id, i, lsn.Position)
			}
			if lsn.Duration < 5 || lsn.Duration > 20 {
				t.Errorf("lesson duration %d out of range", lsn.Duration)
			}
		}
	}
	assert.Equal(t, 25, total)
}

func TestService_AddToCourse(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)

	for i, title := range []string{"Setup", "Queries", "Aggregation"} {
		lsn, err := env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: crs.CourseID, Title: title})
		require.NoError(t, err)
		assert.EqualValues(t, i+1, lsn.Position)
		assert.NotEmpty(t, lsn.Content)
	}

	lsn, err := env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: crs.CourseID, Title: "Indexes", Content: "B-trees", Duration: 42})
	require.NoError(t, err)
	assert.EqualValues(t, 4, lsn.Position)
	assert.EqualValues(t, 42, lsn.Duration)
	assert.Equal(t, "B-trees", lsn.Content)

	_, err = env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: core.NewID(), Title: "Orphan"})
	assert.True(t, core.IsNotFound(err), "got %v", err)

	_, err = env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: crs.CourseID, Title: ""})
	assert.True(t, core.IsValidation(err), "got %v", err)

	braced := "{" + strings.ToUpper(crs.CourseID) + "}"
	_, err = env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: braced, Title: "Braced"})
	assert.True(t, core.IsValidation(err), "got %v", err)

	_, err = env.Lessons.ListByCourse(ctx, "{"+crs.CourseID+"}")
	assert.True(t, core.IsValidation(err), "got %v", err)
}

// flakyLessons fails every other insert.
type flakyLessons struct {
	lesson.Repository
	calls int
	fail  func(call int) bool
}

func (r *flakyLessons) CreateLesson(ctx context.Context, lsn lesson.Lesson) error {
	r.calls++
	if r.fail(r.calls) {
		return errors.New("connection reset")
	}
	return r.Repository.CreateLesson(ctx, lsn)
}

func TestService_Seed_retries(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	testutil.CreateCourse(t, env, instructor.UserID, true)

	tests := []struct {
		name          string
		fail          func(call int) bool
		n             int
		wantInserted  int
		wantAttempted int
	}{
		{name: "every other insert fails", fail: func(call int) bool { return call%2 == 1 }, n: 4, wantInserted: 4, wantAttempted: 8},
		{name: "every insert fails", fail: func(int) bool { return true }, n: 3, wantInserted: 0, wantAttempted: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &flakyLessons{Repository: env.LessonRepo, fail: tt.fail}
			svc := lesson.NewService(repo, env.CourseRepo, env.Fake, env.Log)

			res, err := svc.Seed(ctx, tt.n)
			if err != nil {
				t.Fatalf("Seed() error = %v", err)
			}
			if res.Inserted != tt.wantInserted || res.Attempted != tt.wantAttempted {
				t.Errorf("Seed() = %s, want %d inserted of %d", res, tt.wantInserted, tt.wantAttempted)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, env, user.RoleInstructor, true)
	crs := testutil.CreateCourse(t, env, instructor.UserID, true)

	var lessons []lesson.Lesson
	for _, title := range []string{"One", "Two", "Three"} {
		lsn, err := env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: crs.CourseID, Title: title})
		require.NoError(t, err)
		lessons = append(lessons, lsn)
	}

	n, err := env.Lessons.Delete(ctx, lessons[0].LessonID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// remaining lessons keep their positions
	left, err := env.Lessons.ListByCourse(ctx, crs.CourseID)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.EqualValues(t, 2, left[0].Position)
	assert.EqualValues(t, 3, left[1].Position)

	// appends keep going after the last position
	for _, want := range []int32{4, 5, 6} {
		lsn, err := env.Lessons.AddToCourse(ctx, lesson.NewLesson{CourseID: crs.CourseID, Title: "More"})
		require.NoError(t, err)
		assert.Equal(t, want, lsn.Position)
	}

	res, err := env.Lessons.Seed(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Inserted)
	assert.Zero(t, res.Failed())

	_, err = env.Lessons.Delete(ctx, lessons[0].LessonID)
	assert.True(t, core.IsNotFound(err), "got %v", err)
}
