package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return db
}

func newUser(email string) user.User {
	return user.User{
		UserID:     core.NewID(),
		Email:      email,
		FirstName:  "Grace",
		LastName:   "Hopper",
		Role:       user.RoleInstructor,
		DateJoined: core.Now(),
		Profile:    user.Profile{Skills: []string{}},
		IsActive:   true,
	}
}

func TestDB_Install(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Install(ctx, schema.Users))
	}
	names, err := db.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{schema.UsersCollection}, names)

	t.Run("existing duplicates", func(t *testing.T) {
		coll := db.collection(schema.LessonsCollection)
		for i := 0; i < 2; i++ {
			raw, err := bson.Marshal(bson.M{"lessonId": "same"})
			require.NoError(t, err)
			coll.docs = append(coll.docs, raw)
		}
		err := db.Install(ctx, schema.Lessons)
		assert.True(t, core.IsDuplicateKey(err), "got %v", err)
	})

	require.NoError(t, db.Close(ctx))
	names, err = db.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCollection_insert(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	// before installation anything goes, like a collection created on first insert
	require.NoError(t, repo.CreateUser(ctx, user.User{UserID: core.NewID(), Email: "not an email"}))

	db.Drop()
	repo = NewUserRepository(db)
	require.NoError(t, repo.Install(ctx))

	usr := newUser("grace@example.com")
	require.NoError(t, repo.CreateUser(ctx, usr))

	t.Run("schema violation", func(t *testing.T) {
		bad := newUser("grace-at-example")
		err := repo.CreateUser(ctx, bad)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "email", vErr.Fields[0].Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.CreateUser(ctx, newUser("grace@example.com"))
		var dErr *core.DuplicateKeyError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, schema.UsersCollection, dErr.Collection)
		assert.Equal(t, "email_1", dErr.Index)
		assert.Equal(t, `{ email: "grace@example.com" }`, dErr.Key)
	})

	got, err := repo.GetUserByID(ctx, usr.UserID)
	require.NoError(t, err)
	assert.Equal(t, usr.Email, got.Email)
	assert.True(t, usr.DateJoined.Equal(got.DateJoined))

	_, err = repo.GetUserByID(ctx, core.NewID())
	assert.True(t, core.IsNotFound(err), "got %v", err)
}

func TestCollection_update(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	require.NoError(t, repo.Install(ctx))

	first, second := newUser("a@example.com"), newUser("b@example.com")
	require.NoError(t, repo.CreateUser(ctx, first))
	require.NoError(t, repo.CreateUser(ctx, second))

	at := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	n, err := repo.DeactivateUser(ctx, first.UserID, at)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// an inactive user no longer matches, whatever the timestamp
	n, err = repo.DeactivateUser(ctx, first.UserID, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeactivateUser(ctx, core.NewID(), at)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := repo.GetUserByID(ctx, first.UserID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, at.Equal(*got.UpdatedAt))

	got, err = repo.GetUserByID(ctx, second.UserID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestLessonRepository(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := NewLessonRepository(db)
	require.NoError(t, repo.Install(ctx))

	courseID := core.NewID()
	newLesson := func(position int32) lesson.Lesson {
		now := core.Now()
		return lesson.Lesson{
			LessonID:  core.NewID(),
			CourseID:  courseID,
			Title:     "Lesson",
			Content:   "Content",
			Duration:  10,
			Position:  position,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	third := newLesson(3)
	require.NoError(t, repo.CreateLesson(ctx, third))
	require.NoError(t, repo.CreateLesson(ctx, newLesson(1)))
	require.NoError(t, repo.CreateLesson(ctx, newLesson(2)))

	err := repo.CreateLesson(ctx, newLesson(2))
	assert.True(t, core.IsDuplicateKey(err), "got %v", err)

	err = repo.CreateLesson(ctx, newLesson(0))
	assert.True(t, core.IsValidation(err), "got %v", err)

	last, err := repo.LastLessonPosition(ctx, courseID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, last)

	last, err = repo.LastLessonPosition(ctx, core.NewID())
	require.NoError(t, err)
	assert.Zero(t, last)

	lessons, err := repo.QueryLessonsByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	for i, lsn := range lessons {
		assert.EqualValues(t, i+1, lsn.Position)
	}

	n, err := repo.DeleteLessonByID(ctx, third.LessonID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteLessonByID(ctx, third.LessonID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCourseRepository_PublishCourse(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := NewCourseRepository(db)
	require.NoError(t, repo.Install(ctx))

	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	crs := course.Course{
		CourseID:     core.NewID(),
		Title:        "Databases",
		Description:  "Documents and indexes",
		InstructorID: core.NewID(),
		Category:     "Data",
		Level:        course.LevelBeginner,
		Duration:     12,
		Price:        40,
		Tags:         []string{},
		Ratings:      []course.Rating{},
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, repo.CreateCourse(ctx, crs))

	tests := []struct {
		name string
		at   time.Time
		want int64
	}{
		{name: "unpublished", at: created.Add(time.Hour), want: 1},
		{name: "already published", at: created.Add(2 * time.Hour), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.PublishCourse(ctx, crs.CourseID, tt.at)
			if err != nil {
				t.Fatalf("PublishCourse() error = %v", err)
			}
			if n != tt.want {
				t.Errorf("PublishCourse() = %d, want %d", n, tt.want)
			}
		})
	}

	got, err := repo.GetCourseByID(ctx, crs.CourseID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.True(t, created.Add(time.Hour).Equal(got.UpdatedAt))
}

func TestDB_Drop(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	before := NewUserRepository(db)
	require.NoError(t, before.Install(ctx))
	require.NoError(t, before.CreateUser(ctx, newUser("a@example.com")))

	db.Drop()

	after := NewUserRepository(db)
	users, err := after.QueryUsersByRole(ctx, user.RoleInstructor)
	require.NoError(t, err)
	assert.Empty(t, users)

	// a repository opened before the drop writes where later ones read
	usr := newUser("b@example.com")
	require.NoError(t, before.CreateUser(ctx, usr))
	got, err := after.GetUserByID(ctx, usr.UserID)
	require.NoError(t, err)
	assert.Equal(t, usr.Email, got.Email)
}
