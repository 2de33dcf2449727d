package inmemdb

import (
	"context"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/schema"
)

type enrollmentRepository struct {
	db   *DB
	coll *collection
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db, coll: db.collection(schema.EnrollmentsCollection)}
}

func byEnrollmentID(id string) func(enrollment.Enrollment) bool {
	return func(e enrollment.Enrollment) bool { return e.EnrollmentID == id }
}

func (repo *enrollmentRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Enrollments)
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, enr enrollment.Enrollment) error {
	return repo.coll.insert(enr)
}

func (repo *enrollmentRepository) GetEnrollmentByID(_ context.Context, id string) (enrollment.Enrollment, error) {
	return findOne(repo.coll, core.EnrollmentRef(id), byEnrollmentID(id))
}

func (repo *enrollmentRepository) FindEnrollment(_ context.Context, studentID, courseID string) (enrollment.Enrollment, error) {
	return findOne(repo.coll, core.EnrollmentRef(studentID+"/"+courseID), func(e enrollment.Enrollment) bool {
		return e.StudentID == studentID && e.CourseID == courseID
	})
}

func (repo *enrollmentRepository) DeleteEnrollmentByID(_ context.Context, id string) (int64, error) {
	return deleteOne(repo.coll, byEnrollmentID(id))
}
