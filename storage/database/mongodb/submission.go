package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/submission"
)

type submissionRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db, coll: db.Database.Collection(schema.SubmissionsCollection)}
}

func (repo *submissionRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Submissions)
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) error {
	_, err := repo.coll.InsertOne(ctx, sub)
	return translate(err, schema.SubmissionsCollection)
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id string) (submission.Submission, error) {
	var sub submission.Submission
	if err := repo.coll.FindOne(ctx, bson.M{"submissionId": id}).Decode(&sub); err != nil {
		return submission.Submission{}, notFound(err, core.SubmissionRef(id))
	}
	return sub, nil
}

func (repo *submissionRepository) GradeSubmission(ctx context.Context, id string, score int32, feedback string, gradedAt time.Time) (int64, error) {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"submissionId": id}, bson.M{"$set": bson.M{
		"score":    score,
		"feedback": feedback,
		"gradedAt": gradedAt,
		"isGraded": true,
	}})
	if err != nil {
		return 0, translate(err, schema.SubmissionsCollection)
	}
	return res.ModifiedCount, nil
}
