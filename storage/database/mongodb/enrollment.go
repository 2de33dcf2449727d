package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/schema"
)

type enrollmentRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db, coll: db.Database.Collection(schema.EnrollmentsCollection)}
}

func (repo *enrollmentRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Enrollments)
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment) error {
	_, err := repo.coll.InsertOne(ctx, enr)
	return translate(err, schema.EnrollmentsCollection)
}

func (repo *enrollmentRepository) findOne(ctx context.Context, filter bson.M, ref core.Ref) (enrollment.Enrollment, error) {
	var enr enrollment.Enrollment
	if err := repo.coll.FindOne(ctx, filter).Decode(&enr); err != nil {
		return enrollment.Enrollment{}, notFound(err, ref)
	}
	return enr, nil
}

func (repo *enrollmentRepository) GetEnrollmentByID(ctx context.Context, id string) (enrollment.Enrollment, error) {
	return repo.findOne(ctx, bson.M{"enrollmentId": id}, core.EnrollmentRef(id))
}

func (repo *enrollmentRepository) FindEnrollment(ctx context.Context, studentID, courseID string) (enrollment.Enrollment, error) {
	filter := bson.M{"studentId": studentID, "courseId": courseID}
	return repo.findOne(ctx, filter, core.EnrollmentRef(studentID+"/"+courseID))
}

func (repo *enrollmentRepository) DeleteEnrollmentByID(ctx context.Context, id string) (int64, error) {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"enrollmentId": id})
	if err != nil {
		return 0, errors.Wrap(err, "deleting enrollment")
	}
	return res.DeletedCount, nil
}
