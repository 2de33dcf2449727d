package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type reportRepository struct {
	users       *mongo.Collection
	courses     *mongo.Collection
	assignments *mongo.Collection
	enrollments *mongo.Collection
	submissions *mongo.Collection
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{
		users:       db.Database.Collection(schema.UsersCollection),
		courses:     db.Database.Collection(schema.CoursesCollection),
		assignments: db.Database.Collection(schema.AssignmentsCollection),
		enrollments: db.Database.Collection(schema.EnrollmentsCollection),
		submissions: db.Database.Collection(schema.SubmissionsCollection),
	}
}

var (
	studentProjection = bson.M{"_id": 0, "userId": 1, "firstName": 1, "lastName": 1, "email": 1, "dateJoined": 1}
	summaryProjection = bson.M{"_id": 0, "courseId": 1, "title": 1, "category": 1, "price": 1, "tags": 1}
)

func (repo *reportRepository) ActiveStudents(ctx context.Context) ([]report.Student, error) {
	filter := bson.M{"role": user.RoleStudent, "isActive": true}
	return findAll[report.Student](ctx, repo.users, filter, options.Find().SetProjection(studentProjection))
}

func (repo *reportRepository) StudentsInCourse(ctx context.Context, courseID string) ([]report.CourseStudent, error) {
	return aggregate[report.CourseStudent](ctx, repo.enrollments, studentsInCoursePipeline(courseID))
}

func (repo *reportRepository) UsersJoinedSince(ctx context.Context, since time.Time) ([]report.RecentUser, error) {
	filter := bson.M{"dateJoined": bson.M{"$gte": since}}
	return findAll[report.RecentUser](ctx, repo.users, filter, options.Find().SetProjection(studentProjection))
}

func (repo *reportRepository) AverageGradePerStudent(ctx context.Context) ([]report.StudentGrade, error) {
	return aggregate[report.StudentGrade](ctx, repo.submissions, averageGradePipeline())
}

func (repo *reportRepository) TopPerformingStudents(ctx context.Context, limit int) ([]report.TopStudent, error) {
	return aggregate[report.TopStudent](ctx, repo.submissions, topStudentsPipeline(limit))
}

func (repo *reportRepository) StudentEngagement(ctx context.Context) ([]report.Engagement, error) {
	return aggregate[report.Engagement](ctx, repo.submissions, engagementPipeline())
}

func (repo *reportRepository) CoursesWithInstructor(ctx context.Context) ([]report.CourseInstructor, error) {
	return aggregate[report.CourseInstructor](ctx, repo.courses, coursesWithInstructorPipeline())
}

func (repo *reportRepository) summaries(ctx context.Context, filter bson.M) ([]report.CourseSummary, error) {
	return findAll[report.CourseSummary](ctx, repo.courses, filter, options.Find().SetProjection(summaryProjection))
}

func (repo *reportRepository) CoursesByCategory(ctx context.Context, category string) ([]report.CourseSummary, error) {
	return repo.summaries(ctx, bson.M{"category": category})
}

func (repo *reportRepository) CoursesByTitle(ctx context.Context, query string) ([]report.CourseSummary, error) {
	return repo.summaries(ctx, titleFilter(query))
}

func titleFilter(query string) bson.M {
	return bson.M{"title": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
}

func (repo *reportRepository) CoursesInPriceRange(ctx context.Context, min, max float64) ([]report.CourseSummary, error) {
	return repo.summaries(ctx, bson.M{"price": bson.M{"$gte": min, "$lte": max}})
}

func (repo *reportRepository) CoursesByTags(ctx context.Context, tags []string) ([]report.CourseSummary, error) {
	return repo.summaries(ctx, bson.M{"tags": bson.M{"$in": tags}})
}

func (repo *reportRepository) AverageCourseRating(ctx context.Context) ([]report.CourseRating, error) {
	return aggregate[report.CourseRating](ctx, repo.courses, averageCourseRatingPipeline())
}

func (repo *reportRepository) CoursesPerCategory(ctx context.Context) ([]report.CategoryCount, error) {
	return aggregate[report.CategoryCount](ctx, repo.courses, coursesPerCategoryPipeline())
}

func (repo *reportRepository) AverageRatingPerInstructor(ctx context.Context) ([]report.InstructorRating, error) {
	return aggregate[report.InstructorRating](ctx, repo.courses, averageRatingPerInstructorPipeline())
}

func (repo *reportRepository) PopularCategories(ctx context.Context) ([]report.CategoryCount, error) {
	return aggregate[report.CategoryCount](ctx, repo.enrollments, popularCategoriesPipeline())
}

func (repo *reportRepository) AssignmentsDueBetween(ctx context.Context, from, to time.Time) ([]report.UpcomingAssignment, error) {
	filter := bson.M{"dueDate": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "assignmentId": 1, "courseId": 1, "title": 1, "dueDate": 1}).
		SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "assignmentId", Value: 1}})
	return findAll[report.UpcomingAssignment](ctx, repo.assignments, filter, opts)
}

func (repo *reportRepository) EnrollmentsPerCourse(ctx context.Context) ([]report.CourseEnrollments, error) {
	return aggregate[report.CourseEnrollments](ctx, repo.enrollments, enrollmentsPerCoursePipeline())
}

func (repo *reportRepository) CourseExists(ctx context.Context, courseID string) (bool, error) {
	n, err := repo.courses.CountDocuments(ctx, bson.M{"courseId": courseID}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "counting courses")
	}
	return n > 0, nil
}

func (repo *reportRepository) CompletionRates(ctx context.Context, courseIDs ...string) ([]report.CompletionRate, error) {
	return aggregate[report.CompletionRate](ctx, repo.enrollments, completionRatesPipeline(courseIDs...))
}

func (repo *reportRepository) StudentsPerInstructor(ctx context.Context) ([]report.InstructorStudents, error) {
	return aggregate[report.InstructorStudents](ctx, repo.enrollments, studentsPerInstructorPipeline())
}

func (repo *reportRepository) RevenuePerInstructor(ctx context.Context) ([]report.InstructorRevenue, error) {
	return aggregate[report.InstructorRevenue](ctx, repo.enrollments, revenuePerInstructorPipeline())
}

func (repo *reportRepository) MonthlyEnrollmentTrends(ctx context.Context) ([]report.MonthlyEnrollments, error) {
	return aggregate[report.MonthlyEnrollments](ctx, repo.enrollments, monthlyEnrollmentsPipeline())
}
