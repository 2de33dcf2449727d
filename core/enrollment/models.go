package enrollment

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

// Statuses
const (
	StatusEnrolled   = "enrolled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

var Statuses = []string{StatusEnrolled, StatusInProgress, StatusCompleted}

type Enrollment struct {
	EnrollmentID string    `bson:"enrollmentId" json:"enrollmentId"`
	StudentID    string    `bson:"studentId" json:"studentId"`
	CourseID     string    `bson:"courseId" json:"courseId"`
	EnrolledAt   time.Time `bson:"enrolledAt" json:"enrolledAt"`
	Progress     float64   `bson:"progress" json:"progress"` // percent
	Status       string    `bson:"status" json:"status"`
}

func (e Enrollment) Ref() core.Ref {
	return core.EnrollmentRef(e.EnrollmentID)
}
