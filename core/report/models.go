package report

import "time"

// Student is an active student as listed by ActiveStudents.
type Student struct {
	UserID     string    `bson:"userId" json:"userId"`
	FirstName  string    `bson:"firstName" json:"firstName"`
	LastName   string    `bson:"lastName" json:"lastName"`
	Email      string    `bson:"email" json:"email"`
	DateJoined time.Time `bson:"dateJoined" json:"dateJoined"`
}

// CourseStudent is one enrollment of a course joined to its student.
type CourseStudent struct {
	UserID    string `bson:"userId" json:"userId"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Status    string `bson:"status" json:"status"`
}

type RecentUser struct {
	UserID     string    `bson:"userId" json:"userId"`
	FirstName  string    `bson:"firstName" json:"firstName"`
	LastName   string    `bson:"lastName" json:"lastName"`
	DateJoined time.Time `bson:"dateJoined" json:"dateJoined"`
}

// StudentGrade is the mean score of a student's graded submissions.
type StudentGrade struct {
	StudentID    string  `bson:"studentId" json:"studentId"`
	AverageScore float64 `bson:"averageScore" json:"averageScore"`
	Graded       int     `bson:"submissionsGraded" json:"submissionsGraded"`
}

type TopStudent struct {
	StudentID    string  `bson:"studentId" json:"studentId"`
	FirstName    string  `bson:"firstName" json:"firstName"`
	LastName     string  `bson:"lastName" json:"lastName"`
	Email        string  `bson:"email" json:"email"`
	AverageScore float64 `bson:"averageScore" json:"averageScore"`
	Submissions  int     `bson:"submissionsCount" json:"submissionsCount"`
}

// Engagement counts every submission of a student. AverageScore only covers graded ones.
type Engagement struct {
	StudentID    string  `bson:"studentId" json:"studentId"`
	Name         string  `bson:"name" json:"name"`
	Submissions  int     `bson:"submissionsMade" json:"submissionsMade"`
	AverageScore float64 `bson:"averageScore" json:"averageScore"`
}

type CourseInstructor struct {
	CourseID            string `bson:"courseId" json:"courseId"`
	Title               string `bson:"title" json:"title"`
	Category            string `bson:"category" json:"category"`
	Level               string `bson:"level" json:"level"`
	InstructorFirstName string `bson:"instructorFirstName" json:"instructorFirstName"`
	InstructorLastName  string `bson:"instructorLastName" json:"instructorLastName"`
	InstructorEmail     string `bson:"instructorEmail" json:"instructorEmail"`
}

// CourseSummary is the projection returned by the course filters.
type CourseSummary struct {
	CourseID string   `bson:"courseId" json:"courseId"`
	Title    string   `bson:"title" json:"title"`
	Category string   `bson:"category" json:"category"`
	Price    float64  `bson:"price" json:"price"`
	Tags     []string `bson:"tags" json:"tags"`
}

type CourseRating struct {
	CourseID      string  `bson:"courseId" json:"courseId"`
	Title         string  `bson:"title" json:"title"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	Ratings       int     `bson:"numRatings" json:"numRatings"`
}

type CategoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

type InstructorRating struct {
	InstructorID  string  `bson:"instructorId" json:"instructorId"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	Ratings       int     `bson:"numRatings" json:"numRatings"`
}

type UpcomingAssignment struct {
	AssignmentID string    `bson:"assignmentId" json:"assignmentId"`
	CourseID     string    `bson:"courseId" json:"courseId"`
	Title        string    `bson:"title" json:"title"`
	DueDate      time.Time `bson:"dueDate" json:"dueDate"`
}

type CourseEnrollments struct {
	CourseID    string `bson:"courseId" json:"courseId"`
	Enrollments int    `bson:"totalEnrollments" json:"totalEnrollments"`
}

// CompletionRate is completed/total*100 rounded to one decimal, 0 for a course without enrollments.
type CompletionRate struct {
	CourseID  string  `bson:"courseId" json:"courseId"`
	Total     int     `bson:"total" json:"total"`
	Completed int     `bson:"completed" json:"completed"`
	Rate      float64 `bson:"completionRate" json:"completionRate"`
}

type InstructorStudents struct {
	InstructorID string `bson:"instructorId" json:"instructorId"`
	Students     int    `bson:"totalStudents" json:"totalStudents"`
}

type InstructorRevenue struct {
	InstructorID string  `bson:"instructorId" json:"instructorId"`
	Revenue      float64 `bson:"totalRevenue" json:"totalRevenue"`
	Enrollments  int     `bson:"enrollments" json:"enrollments"`
}

type MonthlyEnrollments struct {
	Year        int `bson:"year" json:"year"`
	Month       int `bson:"month" json:"month"`
	Enrollments int `bson:"totalEnrollments" json:"totalEnrollments"`
}
