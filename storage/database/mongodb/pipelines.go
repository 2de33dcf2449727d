package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/schema"
)

func stage(name string, v interface{}) bson.D {
	return bson.D{{Key: name, Value: v}}
}

// sortDesc orders by metric descending, then by key ascending.
func sortDesc(metric, key string) bson.D {
	return stage("$sort", bson.D{{Key: metric, Value: -1}, {Key: key, Value: 1}})
}

// join is an inner equi-join: unmatched documents are dropped by the $unwind.
func join(from, localField, foreignField, as string) []bson.D {
	return []bson.D{
		stage("$lookup", bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: foreignField},
			{Key: "as", Value: as},
		}),
		stage("$unwind", "$"+as),
	}
}

func round(expr interface{}, places int) bson.M {
	return bson.M{"$round": bson.A{expr, places}}
}

func pipeline(stages ...interface{}) mongo.Pipeline {
	var p mongo.Pipeline
	for _, s := range stages {
		switch s := s.(type) {
		case bson.D:
			p = append(p, s)
		case []bson.D:
			p = append(p, s...)
		}
	}
	return p
}

func studentsInCoursePipeline(courseID string) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"courseId": courseID}),
		join(schema.UsersCollection, "studentId", "userId", "student"),
		stage("$project", bson.M{
			"_id":       0,
			"userId":    "$student.userId",
			"firstName": "$student.firstName",
			"lastName":  "$student.lastName",
			"email":     "$student.email",
			"status":    1,
		}),
	)
}

func averageGradePipeline() mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"isGraded": true}),
		stage("$group", bson.M{
			"_id":               "$studentId",
			"averageScore":      bson.M{"$avg": "$score"},
			"submissionsGraded": bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"_id":               0,
			"studentId":         "$_id",
			"averageScore":      1,
			"submissionsGraded": 1,
		}),
		sortDesc("averageScore", "studentId"),
	)
}

func topStudentsPipeline(limit int) mongo.Pipeline {
	p := averageGradePipeline()
	return append(p, pipeline(
		stage("$limit", limit),
		join(schema.UsersCollection, "studentId", "userId", "student"),
		stage("$project", bson.M{
			"studentId":        1,
			"firstName":        "$student.firstName",
			"lastName":         "$student.lastName",
			"email":            "$student.email",
			"averageScore":     1,
			"submissionsCount": "$submissionsGraded",
		}),
		sortDesc("averageScore", "studentId"),
	)...)
}

func engagementPipeline() mongo.Pipeline {
	return pipeline(
		stage("$group", bson.M{
			"_id":             "$studentId",
			"submissionsMade": bson.M{"$sum": 1},
			"averageScore": bson.M{"$avg": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$isGraded", true}}, "$score", nil},
			}},
		}),
		join(schema.UsersCollection, "_id", "userId", "student"),
		stage("$project", bson.M{
			"_id":             0,
			"studentId":       "$_id",
			"name":            bson.M{"$concat": bson.A{"$student.firstName", " ", "$student.lastName"}},
			"submissionsMade": 1,
			"averageScore":    round(bson.M{"$ifNull": bson.A{"$averageScore", 0}}, 2),
		}),
		sortDesc("submissionsMade", "studentId"),
	)
}

func coursesWithInstructorPipeline() mongo.Pipeline {
	return pipeline(
		join(schema.UsersCollection, "instructorId", "userId", "instructor"),
		stage("$project", bson.M{
			"_id":                 0,
			"courseId":            1,
			"title":               1,
			"category":            1,
			"level":               1,
			"instructorFirstName": "$instructor.firstName",
			"instructorLastName":  "$instructor.lastName",
			"instructorEmail":     "$instructor.email",
		}),
	)
}

func averageCourseRatingPipeline() mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"ratings.0": bson.M{"$exists": true}}),
		stage("$project", bson.M{
			"_id":           0,
			"courseId":      1,
			"title":         1,
			"averageRating": bson.M{"$avg": "$ratings.rating"},
			"numRatings":    bson.M{"$size": "$ratings"},
		}),
		sortDesc("averageRating", "courseId"),
	)
}

// countPipeline counts documents per field and sorts the groups by count.
func countPipeline(field string) mongo.Pipeline {
	return pipeline(
		stage("$group", bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}),
		stage("$project", bson.M{"_id": 0, "category": "$_id", "count": 1}),
		sortDesc("count", "category"),
	)
}

func coursesPerCategoryPipeline() mongo.Pipeline {
	return countPipeline("category")
}

func averageRatingPerInstructorPipeline() mongo.Pipeline {
	return pipeline(
		stage("$unwind", "$ratings"),
		stage("$group", bson.M{
			"_id":           "$instructorId",
			"averageRating": bson.M{"$avg": "$ratings.rating"},
			"numRatings":    bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"_id":           0,
			"instructorId":  "$_id",
			"averageRating": round("$averageRating", 2),
			"numRatings":    1,
		}),
		sortDesc("averageRating", "instructorId"),
	)
}

func popularCategoriesPipeline() mongo.Pipeline {
	return append(
		pipeline(join(schema.CoursesCollection, "courseId", "courseId", "course")),
		countPipeline("course.category")...,
	)
}

func enrollmentsPerCoursePipeline() mongo.Pipeline {
	return pipeline(
		stage("$group", bson.M{"_id": "$courseId", "totalEnrollments": bson.M{"$sum": 1}}),
		stage("$project", bson.M{"_id": 0, "courseId": "$_id", "totalEnrollments": 1}),
		sortDesc("totalEnrollments", "courseId"),
	)
}

func completionRatesPipeline(courseIDs ...string) mongo.Pipeline {
	var match interface{}
	if len(courseIDs) > 0 {
		match = stage("$match", bson.M{"courseId": bson.M{"$in": courseIDs}})
	}
	return pipeline(
		match,
		stage("$group", bson.M{
			"_id":   "$courseId",
			"total": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", enrollment.StatusCompleted}}, 1, 0},
			}},
		}),
		stage("$project", bson.M{
			"_id":       0,
			"courseId":  "$_id",
			"total":     1,
			"completed": 1,
			"completionRate": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$total", 0}},
				0,
				round(bson.M{"$multiply": bson.A{bson.M{"$divide": bson.A{"$completed", "$total"}}, 100}}, 1),
			}},
		}),
		sortDesc("completionRate", "courseId"),
	)
}

func studentsPerInstructorPipeline() mongo.Pipeline {
	return pipeline(
		join(schema.CoursesCollection, "courseId", "courseId", "course"),
		stage("$group", bson.M{"_id": "$course.instructorId", "students": bson.M{"$addToSet": "$studentId"}}),
		stage("$project", bson.M{"_id": 0, "instructorId": "$_id", "totalStudents": bson.M{"$size": "$students"}}),
		sortDesc("totalStudents", "instructorId"),
	)
}

func revenuePerInstructorPipeline() mongo.Pipeline {
	return pipeline(
		join(schema.CoursesCollection, "courseId", "courseId", "course"),
		stage("$group", bson.M{
			"_id":          "$course.instructorId",
			"totalRevenue": bson.M{"$sum": "$course.price"},
			"enrollments":  bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"_id":          0,
			"instructorId": "$_id",
			"totalRevenue": round("$totalRevenue", 2),
			"enrollments":  1,
		}),
		sortDesc("totalRevenue", "instructorId"),
	)
}

func monthlyEnrollmentsPipeline() mongo.Pipeline {
	return pipeline(
		stage("$group", bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$enrolledAt"},
				"month": bson.M{"$month": "$enrolledAt"},
			},
			"totalEnrollments": bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"_id":              0,
			"year":             "$_id.year",
			"month":            "$_id.month",
			"totalEnrollments": 1,
		}),
		stage("$sort", bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}),
	)
}
