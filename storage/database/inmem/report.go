package inmemdb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
)

type reportRepository struct {
	users       *collection
	courses     *collection
	assignments *collection
	enrollments *collection
	submissions *collection
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{
		users:       db.collection(schema.UsersCollection),
		courses:     db.collection(schema.CoursesCollection),
		assignments: db.collection(schema.AssignmentsCollection),
		enrollments: db.collection(schema.EnrollmentsCollection),
		submissions: db.collection(schema.SubmissionsCollection),
	}
}

func (repo *reportRepository) usersByID() (map[string]user.User, error) {
	users, err := findDocs[user.User](repo.users, nil)
	if err != nil {
		return nil, err
	}
	m := make(map[string]user.User, len(users))
	for _, u := range users {
		if _, ok := m[u.UserID]; !ok {
			m[u.UserID] = u
		}
	}
	return m, nil
}

func (repo *reportRepository) coursesByID() (map[string]course.Course, error) {
	courses, err := findDocs[course.Course](repo.courses, nil)
	if err != nil {
		return nil, err
	}
	m := make(map[string]course.Course, len(courses))
	for _, c := range courses {
		if _, ok := m[c.CourseID]; !ok {
			m[c.CourseID] = c
		}
	}
	return m, nil
}

// enrolledCourses joins every enrollment to its course, dropping enrollments whose course is gone.
func (repo *reportRepository) enrolledCourses() ([]enrollment.Enrollment, []course.Course, error) {
	enrollments, err := findDocs[enrollment.Enrollment](repo.enrollments, nil)
	if err != nil {
		return nil, nil, err
	}
	courses, err := repo.coursesByID()
	if err != nil {
		return nil, nil, err
	}
	var (
		enrs []enrollment.Enrollment
		crss []course.Course
	)
	for _, e := range enrollments {
		if c, ok := courses[e.CourseID]; ok {
			enrs = append(enrs, e)
			crss = append(crss, c)
		}
	}
	return enrs, crss, nil
}

func summarize(courses []course.Course) []report.CourseSummary {
	rows := make([]report.CourseSummary, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, report.CourseSummary{
			CourseID: c.CourseID,
			Title:    c.Title,
			Category: c.Category,
			Price:    c.Price,
			Tags:     c.Tags,
		})
	}
	return rows
}

func countBy(keys []string) []report.CategoryCount {
	order, groups := report.GroupBy(keys, func(k string) string { return k })
	rows := make([]report.CategoryCount, 0, len(order))
	for _, k := range order {
		rows = append(rows, report.CategoryCount{Category: k, Count: len(groups[k])})
	}
	report.SortDesc(rows,
		func(r report.CategoryCount) float64 { return float64(r.Count) },
		func(r report.CategoryCount) string { return r.Category },
	)
	return rows
}

func (repo *reportRepository) ActiveStudents(context.Context) ([]report.Student, error) {
	users, err := findDocs(repo.users, func(u user.User) bool { return u.IsStudent() && u.IsActive })
	if err != nil {
		return nil, err
	}
	rows := make([]report.Student, 0, len(users))
	for _, u := range users {
		rows = append(rows, report.Student{
			UserID:     u.UserID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Email:      u.Email,
			DateJoined: u.DateJoined,
		})
	}
	return rows, nil
}

func (repo *reportRepository) StudentsInCourse(_ context.Context, courseID string) ([]report.CourseStudent, error) {
	enrollments, err := findDocs(repo.enrollments, func(e enrollment.Enrollment) bool { return e.CourseID == courseID })
	if err != nil {
		return nil, err
	}
	users, err := repo.usersByID()
	if err != nil {
		return nil, err
	}
	rows := make([]report.CourseStudent, 0, len(enrollments))
	for _, e := range enrollments {
		u, ok := users[e.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, report.CourseStudent{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Status:    e.Status,
		})
	}
	return rows, nil
}

func (repo *reportRepository) UsersJoinedSince(_ context.Context, since time.Time) ([]report.RecentUser, error) {
	users, err := findDocs(repo.users, func(u user.User) bool { return !u.DateJoined.Before(since) })
	if err != nil {
		return nil, err
	}
	rows := make([]report.RecentUser, 0, len(users))
	for _, u := range users {
		rows = append(rows, report.RecentUser{
			UserID:     u.UserID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			DateJoined: u.DateJoined,
		})
	}
	return rows, nil
}

func (repo *reportRepository) AverageGradePerStudent(context.Context) ([]report.StudentGrade, error) {
	graded, err := findDocs(repo.submissions, func(s submission.Submission) bool { return s.IsGraded })
	if err != nil {
		return nil, err
	}

	students, groups := report.GroupBy(graded, func(s submission.Submission) string { return s.StudentID })
	rows := make([]report.StudentGrade, 0, len(students))
	for _, id := range students {
		scores := make([]float64, 0, len(groups[id]))
		for _, s := range groups[id] {
			scores = append(scores, float64(s.Score))
		}
		rows = append(rows, report.StudentGrade{StudentID: id, AverageScore: report.Average(scores), Graded: len(scores)})
	}
	report.SortDesc(rows,
		func(r report.StudentGrade) float64 { return r.AverageScore },
		func(r report.StudentGrade) string { return r.StudentID },
	)
	return rows, nil
}

func (repo *reportRepository) TopPerformingStudents(ctx context.Context, limit int) ([]report.TopStudent, error) {
	grades, err := repo.AverageGradePerStudent(ctx)
	if err != nil {
		return nil, err
	}
	grades = report.TopK(grades, limit,
		func(r report.StudentGrade) float64 { return r.AverageScore },
		func(r report.StudentGrade) string { return r.StudentID },
	)
	users, err := repo.usersByID()
	if err != nil {
		return nil, err
	}

	rows := make([]report.TopStudent, 0, len(grades))
	for _, g := range grades {
		u, ok := users[g.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, report.TopStudent{
			StudentID:    g.StudentID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        u.Email,
			AverageScore: g.AverageScore,
			Submissions:  g.Graded,
		})
	}
	return rows, nil
}

func (repo *reportRepository) StudentEngagement(context.Context) ([]report.Engagement, error) {
	subs, err := findDocs[submission.Submission](repo.submissions, nil)
	if err != nil {
		return nil, err
	}
	users, err := repo.usersByID()
	if err != nil {
		return nil, err
	}

	students, groups := report.GroupBy(subs, func(s submission.Submission) string { return s.StudentID })
	rows := make([]report.Engagement, 0, len(students))
	for _, id := range students {
		u, ok := users[id]
		if !ok {
			continue
		}
		var scores []float64
		for _, s := range groups[id] {
			if s.IsGraded {
				scores = append(scores, float64(s.Score))
			}
		}
		rows = append(rows, report.Engagement{
			StudentID:    id,
			Name:         u.FullName(),
			Submissions:  len(groups[id]),
			AverageScore: report.Round(report.Average(scores), 2),
		})
	}
	report.SortDesc(rows,
		func(r report.Engagement) float64 { return float64(r.Submissions) },
		func(r report.Engagement) string { return r.StudentID },
	)
	return rows, nil
}

func (repo *reportRepository) CoursesWithInstructor(context.Context) ([]report.CourseInstructor, error) {
	courses, err := findDocs[course.Course](repo.courses, nil)
	if err != nil {
		return nil, err
	}
	users, err := repo.usersByID()
	if err != nil {
		return nil, err
	}

	rows := make([]report.CourseInstructor, 0, len(courses))
	for _, c := range courses {
		u, ok := users[c.InstructorID]
		if !ok {
			continue
		}
		rows = append(rows, report.CourseInstructor{
			CourseID:            c.CourseID,
			Title:               c.Title,
			Category:            c.Category,
			Level:               c.Level,
			InstructorFirstName: u.FirstName,
			InstructorLastName:  u.LastName,
			InstructorEmail:     u.Email,
		})
	}
	return rows, nil
}

func (repo *reportRepository) CoursesByCategory(_ context.Context, category string) ([]report.CourseSummary, error) {
	courses, err := findDocs(repo.courses, func(c course.Course) bool { return c.Category == category })
	if err != nil {
		return nil, err
	}
	return summarize(courses), nil
}

func (repo *reportRepository) CoursesByTitle(_ context.Context, query string) ([]report.CourseSummary, error) {
	query = strings.ToLower(query)
	courses, err := findDocs(repo.courses, func(c course.Course) bool {
		return strings.Contains(strings.ToLower(c.Title), query)
	})
	if err != nil {
		return nil, err
	}
	return summarize(courses), nil
}

func (repo *reportRepository) CoursesInPriceRange(_ context.Context, min, max float64) ([]report.CourseSummary, error) {
	courses, err := findDocs(repo.courses, func(c course.Course) bool { return c.Price >= min && c.Price <= max })
	if err != nil {
		return nil, err
	}
	return summarize(courses), nil
}

func (repo *reportRepository) CoursesByTags(_ context.Context, tags []string) ([]report.CourseSummary, error) {
	courses, err := findDocs(repo.courses, func(c course.Course) bool {
		for _, tag := range tags {
			if contains(c.Tags, tag) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return summarize(courses), nil
}

func (repo *reportRepository) AverageCourseRating(context.Context) ([]report.CourseRating, error) {
	courses, err := findDocs(repo.courses, func(c course.Course) bool { return len(c.Ratings) > 0 })
	if err != nil {
		return nil, err
	}
	rows := make([]report.CourseRating, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, report.CourseRating{
			CourseID:      c.CourseID,
			Title:         c.Title,
			AverageRating: c.AverageRating(),
			Ratings:       len(c.Ratings),
		})
	}
	report.SortDesc(rows,
		func(r report.CourseRating) float64 { return r.AverageRating },
		func(r report.CourseRating) string { return r.CourseID },
	)
	return rows, nil
}

func (repo *reportRepository) CoursesPerCategory(context.Context) ([]report.CategoryCount, error) {
	courses, err := findDocs[course.Course](repo.courses, nil)
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(courses))
	for _, c := range courses {
		categories = append(categories, c.Category)
	}
	return countBy(categories), nil
}

func (repo *reportRepository) AverageRatingPerInstructor(context.Context) ([]report.InstructorRating, error) {
	courses, err := findDocs[course.Course](repo.courses, nil)
	if err != nil {
		return nil, err
	}

	instructors, groups := report.GroupBy(courses, func(c course.Course) string { return c.InstructorID })
	rows := make([]report.InstructorRating, 0, len(instructors))
	for _, id := range instructors {
		var ratings []float64
		for _, c := range groups[id] {
			for _, r := range c.Ratings {
				ratings = append(ratings, r.Rating)
			}
		}
		if len(ratings) == 0 {
			continue
		}
		rows = append(rows, report.InstructorRating{
			InstructorID:  id,
			AverageRating: report.Round(report.Average(ratings), 2),
			Ratings:       len(ratings),
		})
	}
	report.SortDesc(rows,
		func(r report.InstructorRating) float64 { return r.AverageRating },
		func(r report.InstructorRating) string { return r.InstructorID },
	)
	return rows, nil
}

func (repo *reportRepository) PopularCategories(context.Context) ([]report.CategoryCount, error) {
	_, courses, err := repo.enrolledCourses()
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(courses))
	for _, c := range courses {
		categories = append(categories, c.Category)
	}
	return countBy(categories), nil
}

func (repo *reportRepository) AssignmentsDueBetween(_ context.Context, from, to time.Time) ([]report.UpcomingAssignment, error) {
	assignments, err := findDocs(repo.assignments, func(a assignment.Assignment) bool {
		return !a.DueDate.Before(from) && !a.DueDate.After(to)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		if !assignments[i].DueDate.Equal(assignments[j].DueDate) {
			return assignments[i].DueDate.Before(assignments[j].DueDate)
		}
		return assignments[i].AssignmentID < assignments[j].AssignmentID
	})

	rows := make([]report.UpcomingAssignment, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, report.UpcomingAssignment{
			AssignmentID: a.AssignmentID,
			CourseID:     a.CourseID,
			Title:        a.Title,
			DueDate:      a.DueDate,
		})
	}
	return rows, nil
}

func (repo *reportRepository) EnrollmentsPerCourse(context.Context) ([]report.CourseEnrollments, error) {
	enrollments, err := findDocs[enrollment.Enrollment](repo.enrollments, nil)
	if err != nil {
		return nil, err
	}
	courses, groups := report.GroupBy(enrollments, func(e enrollment.Enrollment) string { return e.CourseID })
	rows := make([]report.CourseEnrollments, 0, len(courses))
	for _, id := range courses {
		rows = append(rows, report.CourseEnrollments{CourseID: id, Enrollments: len(groups[id])})
	}
	report.SortDesc(rows,
		func(r report.CourseEnrollments) float64 { return float64(r.Enrollments) },
		func(r report.CourseEnrollments) string { return r.CourseID },
	)
	return rows, nil
}

func (repo *reportRepository) CourseExists(_ context.Context, courseID string) (bool, error) {
	found, err := findDocs(repo.courses, func(c course.Course) bool { return c.CourseID == courseID })
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

func (repo *reportRepository) CompletionRates(_ context.Context, courseIDs ...string) ([]report.CompletionRate, error) {
	enrollments, err := findDocs(repo.enrollments, func(e enrollment.Enrollment) bool {
		return len(courseIDs) == 0 || contains(courseIDs, e.CourseID)
	})
	if err != nil {
		return nil, err
	}

	courses, groups := report.GroupBy(enrollments, func(e enrollment.Enrollment) string { return e.CourseID })
	rows := make([]report.CompletionRate, 0, len(courses))
	for _, id := range courses {
		var completed int
		for _, e := range groups[id] {
			if e.Status == enrollment.StatusCompleted {
				completed++
			}
		}
		total := len(groups[id])
		rows = append(rows, report.CompletionRate{
			CourseID:  id,
			Total:     total,
			Completed: completed,
			Rate:      report.Rate(completed, total),
		})
	}
	report.SortDesc(rows,
		func(r report.CompletionRate) float64 { return r.Rate },
		func(r report.CompletionRate) string { return r.CourseID },
	)
	return rows, nil
}

func (repo *reportRepository) StudentsPerInstructor(context.Context) ([]report.InstructorStudents, error) {
	enrollments, courses, err := repo.enrolledCourses()
	if err != nil {
		return nil, err
	}

	var instructors []string
	students := make(map[string]map[string]struct{})
	for i, e := range enrollments {
		id := courses[i].InstructorID
		if _, ok := students[id]; !ok {
			instructors = append(instructors, id)
			students[id] = make(map[string]struct{})
		}
		students[id][e.StudentID] = struct{}{}
	}

	rows := make([]report.InstructorStudents, 0, len(instructors))
	for _, id := range instructors {
		rows = append(rows, report.InstructorStudents{InstructorID: id, Students: len(students[id])})
	}
	report.SortDesc(rows,
		func(r report.InstructorStudents) float64 { return float64(r.Students) },
		func(r report.InstructorStudents) string { return r.InstructorID },
	)
	return rows, nil
}

func (repo *reportRepository) RevenuePerInstructor(context.Context) ([]report.InstructorRevenue, error) {
	_, courses, err := repo.enrolledCourses()
	if err != nil {
		return nil, err
	}

	instructors, groups := report.GroupBy(courses, func(c course.Course) string { return c.InstructorID })
	rows := make([]report.InstructorRevenue, 0, len(instructors))
	for _, id := range instructors {
		prices := make([]float64, 0, len(groups[id]))
		for _, c := range groups[id] {
			prices = append(prices, c.Price)
		}
		rows = append(rows, report.InstructorRevenue{
			InstructorID: id,
			Revenue:      report.Round(report.Sum(prices), 2),
			Enrollments:  len(prices),
		})
	}
	report.SortDesc(rows,
		func(r report.InstructorRevenue) float64 { return r.Revenue },
		func(r report.InstructorRevenue) string { return r.InstructorID },
	)
	return rows, nil
}

func (repo *reportRepository) MonthlyEnrollmentTrends(context.Context) ([]report.MonthlyEnrollments, error) {
	enrollments, err := findDocs[enrollment.Enrollment](repo.enrollments, nil)
	if err != nil {
		return nil, err
	}

	months, groups := report.GroupBy(enrollments, func(e enrollment.Enrollment) string {
		at := e.EnrolledAt.UTC()
		return fmt.Sprintf("%04d-%02d", at.Year(), at.Month())
	})
	sort.Strings(months)

	rows := make([]report.MonthlyEnrollments, 0, len(months))
	for _, m := range months {
		at := groups[m][0].EnrolledAt.UTC()
		rows = append(rows, report.MonthlyEnrollments{
			Year:        at.Year(),
			Month:       int(at.Month()),
			Enrollments: len(groups[m]),
		})
	}
	return rows, nil
}
