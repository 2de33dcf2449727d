package assignment

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

type Assignment struct {
	AssignmentID string    `bson:"assignmentId" json:"assignmentId"`
	CourseID     string    `bson:"courseId" json:"courseId"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	DueDate      time.Time `bson:"dueDate" json:"dueDate"`
	MaxScore     int32     `bson:"maxScore" json:"maxScore"`
	IsPublished  bool      `bson:"isPublished" json:"isPublished"`
}

func (a Assignment) Ref() core.Ref {
	return core.AssignmentRef(a.AssignmentID)
}

// NewAssignment contains information needed to create a new Assignment.
// The assignment is due DueInDays days after its creation.
type NewAssignment struct {
	CourseID    string `json:"courseId" validate:"required,identifier"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	DueInDays   int    `json:"dueInDays" validate:"gte=1"`
	MaxScore    int32  `json:"maxScore" validate:"gte=1"`
	IsPublished bool   `json:"isPublished"`
}

func (na *NewAssignment) Validate() error {
	na.CourseID = core.CleanString(na.CourseID, true /* lower */)
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.ValidateStruct(na)
}
