package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/schema"
)

type assignmentRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db, coll: db.Database.Collection(schema.AssignmentsCollection)}
}

func (repo *assignmentRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Assignments)
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment) error {
	_, err := repo.coll.InsertOne(ctx, asg)
	return translate(err, schema.AssignmentsCollection)
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (assignment.Assignment, error) {
	var asg assignment.Assignment
	if err := repo.coll.FindOne(ctx, bson.M{"assignmentId": id}).Decode(&asg); err != nil {
		return assignment.Assignment{}, notFound(err, core.AssignmentRef(id))
	}
	return asg, nil
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return findAll[assignment.Assignment](ctx, repo.coll, bson.M{})
}
