package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type (
	Repository interface {
		Install(ctx context.Context) error
		CreateSubmission(ctx context.Context, sub Submission) error
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		// GradeSubmission returns the number of modified documents.
		GradeSubmission(ctx context.Context, id string, score int32, feedback string, gradedAt time.Time) (int64, error)
	}

	Service struct {
		repo        Repository
		users       user.Repository
		assignments assignment.Repository
		fake        core.Faker
		log         core.Logger
	}
)

func NewService(repo Repository, users user.Repository, assignments assignment.Repository, fake core.Faker, log core.Logger) *Service {
	return &Service{repo: repo, users: users, assignments: assignments, fake: fake, log: log}
}

// Seed inserts n generated submissions of random students for random assignments.
// About half are graded with a score between 50 and 100.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.SubmissionsCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	students, err := svc.users.QueryUsersByRole(ctx, user.RoleStudent)
	if err != nil {
		return res, err
	}
	assignments, err := svc.assignments.QueryAllAssignments(ctx)
	if err != nil {
		return res, err
	}
	var missing []string
	if len(students) == 0 {
		missing = append(missing, "students")
	}
	if len(assignments) == 0 {
		missing = append(missing, "assignments")
	}
	if len(missing) > 0 {
		return res, core.NewPrerequisiteError(schema.SubmissionsCollection, missing...)
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		sub := Submission{
			SubmissionID: core.NewID(),
			AssignmentID: assignments[svc.fake.IntBetween(0, len(assignments)-1)].AssignmentID,
			StudentID:    students[svc.fake.IntBetween(0, len(students)-1)].UserID,
			SubmittedAt:  core.Now().Add(-core.Days(svc.fake.IntBetween(0, 15))),
			Feedback:     NoFeedback,
		}
		if svc.fake.Bool() {
			gradedAt := core.Now()
			sub.GradedAt = &gradedAt
			sub.Score = int32(svc.fake.IntBetween(50, 100))
			sub.Feedback = svc.fake.Sentence(8)
			sub.IsGraded = true
		}

		err := svc.insert(ctx, sub)
		if err != nil {
			svc.log.Warn("failed to insert submission", "entity", schema.SubmissionsCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("inserted submission", "studentId", sub.StudentID, "assignmentId", sub.AssignmentID)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (svc *Service) insert(ctx context.Context, sub Submission) error {
	if err := schema.ValidateValue(schema.Submissions, sub); err != nil {
		return err
	}
	return svc.repo.CreateSubmission(ctx, sub)
}

// Submit records an ungraded submission of a student for an existing assignment.
func (svc *Service) Submit(ctx context.Context, ns NewSubmission) (Submission, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}
	asg, err := svc.assignments.GetAssignmentByID(ctx, ns.AssignmentID)
	if err != nil {
		return Submission{}, err
	}
	usr, err := svc.users.GetUserByID(ctx, ns.StudentID)
	if err != nil {
		return Submission{}, err
	}
	if !usr.IsStudent() {
		return Submission{}, core.NewPreconditionError(usr.Ref(), "not a student")
	}
	if err := svc.repo.Install(ctx); err != nil {
		return Submission{}, err
	}

	sub := Submission{
		SubmissionID: core.NewID(),
		AssignmentID: asg.AssignmentID,
		StudentID:    usr.UserID,
		SubmittedAt:  core.Now(),
		Feedback:     NoFeedback,
	}
	if err := svc.insert(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Submission, error) {
	id, err := core.ParseID("submissionId", id)
	if err != nil {
		return Submission{}, err
	}
	return svc.repo.GetSubmissionByID(ctx, id)
}

// Grade scores a submission against its assignment's maximum and marks it graded.
// Regrading overwrites the previous grade.
func (svc *Service) Grade(ctx context.Context, id string, g Grade) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	sub, err := svc.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	asg, err := svc.assignments.GetAssignmentByID(ctx, sub.AssignmentID)
	if err != nil {
		return 0, err
	}
	if asg.MaxScore > 0 && g.Score > asg.MaxScore {
		return 0, core.NewValidationError(
			errors.Errorf("score %d exceeds max score %d", g.Score, asg.MaxScore),
			core.FieldError{Field: "score", Error: fmt.Sprintf("must be between 0 and %d", asg.MaxScore)},
		)
	}
	if g.Feedback == "" {
		g.Feedback = NoFeedback
	}
	return svc.repo.GradeSubmission(ctx, sub.SubmissionID, g.Score, g.Feedback, core.Now())
}
