package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/schema"
)

type (
	Repository interface {
		Install(ctx context.Context) error
		CreateAssignment(ctx context.Context, asg Assignment) error
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
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

// Seed inserts n generated assignments for random courses.
// Each was created 1 to 60 days ago and is due 7 to 30 days after creation.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.AssignmentsCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return res, err
	}
	if len(courses) == 0 {
		return res, core.NewPrerequisiteError(schema.AssignmentsCollection, "courses")
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		createdAt := core.Now().Add(-core.Days(svc.fake.IntBetween(1, 60)))
		asg := Assignment{
			AssignmentID: core.NewID(),
			CourseID:     courses[svc.fake.IntBetween(0, len(courses)-1)].CourseID,
			Title:        svc.fake.Sentence(6),
			Description:  svc.fake.Paragraph(3),
			CreatedAt:    createdAt,
			DueDate:      createdAt.Add(core.Days(svc.fake.IntBetween(7, 30))),
			MaxScore:     int32(svc.fake.IntBetween(50, 100)),
			IsPublished:  svc.fake.Bool(),
		}

		err := svc.insert(ctx, asg)
		if err != nil {
			svc.log.Warn("failed to insert assignment", "entity", schema.AssignmentsCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("inserted assignment", "title", asg.Title, "courseId", asg.CourseID)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// Create inserts a single assignment for an existing course.
func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	if _, err := svc.courses.GetCourseByID(ctx, na.CourseID); err != nil {
		return Assignment{}, err
	}
	if err := svc.repo.Install(ctx); err != nil {
		return Assignment{}, err
	}

	description := na.Description
	if description == "" {
		description = svc.fake.Paragraph(3)
	}
	createdAt := core.Now()
	asg := Assignment{
		AssignmentID: core.NewID(),
		CourseID:     na.CourseID,
		Title:        na.Title,
		Description:  description,
		CreatedAt:    createdAt,
		DueDate:      createdAt.Add(core.Days(na.DueInDays)),
		MaxScore:     na.MaxScore,
		IsPublished:  na.IsPublished,
	}
	if err := svc.insert(ctx, asg); err != nil {
		return Assignment{}, err
	}
	return asg, nil
}

func (svc *Service) insert(ctx context.Context, asg Assignment) error {
	if !asg.DueDate.After(asg.CreatedAt) {
		return core.NewValidationError(
			errors.New("invalid assignment dates"),
			core.FieldError{Field: "dueDate", Error: "must be after createdAt"},
		)
	}
	if err := schema.ValidateValue(schema.Assignments, asg); err != nil {
		return err
	}
	return svc.repo.CreateAssignment(ctx, asg)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	id, err := core.ParseID("assignmentId", id)
	if err != nil {
		return Assignment{}, err
	}
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}
