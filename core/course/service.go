package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type (
	Repository interface {
		Install(ctx context.Context) error
		CreateCourse(ctx context.Context, crs Course) error
		GetCourseByID(ctx context.Context, id string) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		QueryPublishedCourses(ctx context.Context) ([]Course, error)
		// The update methods return the number of modified documents.
		// PublishCourse only matches a course that is not published yet.
		PublishCourse(ctx context.Context, id string, updatedAt time.Time) (int64, error)
		AddCourseTags(ctx context.Context, id string, tags []string, updatedAt time.Time) (int64, error)
		AddCourseRating(ctx context.Context, id string, rating Rating) (int64, error)
	}

	Service struct {
		repo  Repository
		users user.Repository
		fake  core.Faker
		log   core.Logger
	}
)

func NewService(repo Repository, users user.Repository, fake core.Faker, log core.Logger) *Service {
	return &Service{repo: repo, users: users, fake: fake, log: log}
}

// Seed inserts n generated courses owned by random instructors.
// Published courses receive 2 to 6 ratings from random students.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.CoursesCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	instructors, err := svc.users.QueryUsersByRole(ctx, user.RoleInstructor)
	if err != nil {
		return res, err
	}
	if len(instructors) == 0 {
		return res, core.NewPrerequisiteError(schema.CoursesCollection, "instructors")
	}
	students, err := svc.users.QueryUsersByRole(ctx, user.RoleStudent)
	if err != nil {
		return res, err
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		now := core.Now()
		crs := svc.generate(instructors[svc.fake.IntBetween(0, len(instructors)-1)].UserID, now, now)
		crs.IsPublished = svc.fake.Bool()
		if crs.IsPublished && len(students) > 0 {
			for j, cnt := 0, svc.fake.IntBetween(2, 6); j < cnt; j++ {
				crs.Ratings = append(crs.Ratings, Rating{
					StudentID: students[svc.fake.IntBetween(0, len(students)-1)].UserID,
					Rating:    core.RoundTo(svc.fake.FloatBetween(1, 5), 1),
					RatedAt:   core.Now(),
				})
			}
		}

		err := svc.insert(ctx, crs)
		if err != nil {
			svc.log.Warn("failed to insert course", "entity", schema.CoursesCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("inserted course", "title", crs.Title, "published", crs.IsPublished)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (svc *Service) generate(instructorID string, createdAt, updatedAt time.Time) Course {
	return Course{
		CourseID:     core.NewID(),
		Title:        svc.fake.Sentence(5),
		Description:  svc.fake.Paragraph(3),
		InstructorID: instructorID,
		Category:     svc.fake.Pick(Categories),
		Level:        svc.fake.Pick(Levels),
		Duration:     core.RoundTo(svc.fake.FloatBetween(1, 20), 1),
		Price:        core.RoundTo(svc.fake.FloatBetween(10, 100), 2),
		Tags:         svc.fake.Sample(TagsPool, 2, 5),
		Ratings:      []Rating{},
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Create inserts a single course, backdated between 1 and 30 days.
func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	instructorID, err := svc.resolveInstructor(ctx, nc.InstructorID)
	if err != nil {
		return Course{}, err
	}
	if err := svc.repo.Install(ctx); err != nil {
		return Course{}, err
	}

	createdAt := core.Now().Add(-core.Days(svc.fake.IntBetween(1, 30)))
	updatedAt := createdAt.Add(core.Days(svc.fake.IntBetween(0, 5)))
	crs := Course{
		CourseID:     core.NewID(),
		Title:        nc.Title,
		Description:  nc.Description,
		InstructorID: instructorID,
		Category:     nc.Category,
		Level:        nc.Level,
		Duration:     nc.Duration,
		Price:        nc.Price,
		Tags:         nc.Tags,
		Ratings:      []Rating{},
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		IsPublished:  nc.IsPublished,
	}
	if err := svc.insert(ctx, crs); err != nil {
		return Course{}, err
	}
	return crs, nil
}

func (svc *Service) resolveInstructor(ctx context.Context, id string) (string, error) {
	if id == "" {
		instructors, err := svc.users.QueryUsersByRole(ctx, user.RoleInstructor)
		if err != nil {
			return "", err
		}
		if len(instructors) == 0 {
			return "", core.NewPrerequisiteError(schema.CoursesCollection, "instructors")
		}
		return instructors[svc.fake.IntBetween(0, len(instructors)-1)].UserID, nil
	}

	usr, err := svc.users.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !usr.IsInstructor() {
		return "", core.NewPreconditionError(usr.Ref(), "not an instructor")
	}
	return usr.UserID, nil
}

func (svc *Service) insert(ctx context.Context, crs Course) error {
	if crs.Tags == nil {
		crs.Tags = []string{}
	}
	if crs.Ratings == nil {
		crs.Ratings = []Rating{}
	}
	if err := schema.ValidateValue(schema.Courses, crs); err != nil {
		return err
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	id, err := core.ParseID("courseId", id)
	if err != nil {
		return Course{}, err
	}
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

// Publish flips an unpublished course to published. Publishing twice is a reported no-op.
func (svc *Service) Publish(ctx context.Context, id string) (int64, error) {
	crs, err := svc.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if crs.IsPublished {
		svc.log.Info("course already published", "courseId", crs.CourseID)
		return 0, core.NewPreconditionError(crs.Ref(), "already published")
	}

	n, err := svc.repo.PublishCourse(ctx, crs.CourseID, core.Now())
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// published (or removed) since it was read
		if _, err := svc.repo.GetCourseByID(ctx, crs.CourseID); err != nil {
			return 0, err
		}
		return 0, core.NewPreconditionError(crs.Ref(), "already published")
	}
	return n, nil
}

// AddTags merges tags into the course's tag set.
func (svc *Service) AddTags(ctx context.Context, id string, tags []string) (int64, error) {
	tags = core.CleanStrings(tags)
	if len(tags) == 0 {
		return 0, core.NewValidationError(
			errors.New("no tags provided"),
			core.FieldError{Field: "tags", Error: "at least one tag is required"},
		)
	}
	crs, err := svc.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.repo.AddCourseTags(ctx, crs.CourseID, tags, core.Now())
}

// Rate appends a student's rating to a published course.
func (svc *Service) Rate(ctx context.Context, id string, nr NewRating) (int64, error) {
	if err := nr.Validate(); err != nil {
		return 0, err
	}
	crs, err := svc.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !crs.IsPublished {
		return 0, core.NewPreconditionError(crs.Ref(), "course is not published")
	}
	usr, err := svc.users.GetUserByID(ctx, nr.StudentID)
	if err != nil {
		return 0, err
	}
	if !usr.IsStudent() {
		return 0, core.NewPreconditionError(usr.Ref(), "not a student")
	}

	rating := Rating{StudentID: usr.UserID, Rating: nr.Rating, RatedAt: core.Now()}
	if err := schema.ValidateValue(schema.Courses, withRating(crs, rating)); err != nil {
		return 0, err
	}
	return svc.repo.AddCourseRating(ctx, crs.CourseID, rating)
}

func withRating(crs Course, r Rating) Course {
	crs.Ratings = append(append([]Rating{}, crs.Ratings...), r)
	return crs
}
