package inmemdb

import (
	"context"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/schema"
)

type assignmentRepository struct {
	db   *DB
	coll *collection
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db, coll: db.collection(schema.AssignmentsCollection)}
}

func (repo *assignmentRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Assignments)
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment) error {
	return repo.coll.insert(asg)
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (assignment.Assignment, error) {
	return findOne(repo.coll, core.AssignmentRef(id), func(a assignment.Assignment) bool { return a.AssignmentID == id })
}

func (repo *assignmentRepository) QueryAllAssignments(context.Context) ([]assignment.Assignment, error) {
	return findDocs[assignment.Assignment](repo.coll, nil)
}
