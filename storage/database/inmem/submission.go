package inmemdb

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/submission"
)

type submissionRepository struct {
	db   *DB
	coll *collection
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db, coll: db.collection(schema.SubmissionsCollection)}
}

func bySubmissionID(id string) func(submission.Submission) bool {
	return func(s submission.Submission) bool { return s.SubmissionID == id }
}

func (repo *submissionRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Submissions)
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission) error {
	return repo.coll.insert(sub)
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id string) (submission.Submission, error) {
	return findOne(repo.coll, core.SubmissionRef(id), bySubmissionID(id))
}

func (repo *submissionRepository) GradeSubmission(_ context.Context, id string, score int32, feedback string, gradedAt time.Time) (int64, error) {
	return updateOne(repo.coll, bySubmissionID(id), func(s *submission.Submission) {
		s.Score = score
		s.Feedback = feedback
		s.GradedAt = &gradedAt
		s.IsGraded = true
	})
}
