package lesson

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

type Lesson struct {
	LessonID  string    `bson:"lessonId" json:"lessonId"`
	CourseID  string    `bson:"courseId" json:"courseId"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Duration  int32     `bson:"duration" json:"duration"` // minutes
	Position  int32     `bson:"position" json:"position"` // 1-based, within the course
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (l Lesson) Ref() core.Ref {
	return core.LessonRef(l.LessonID)
}

// NewLesson contains information needed to append a Lesson to a course.
// Content and Duration are generated when left empty.
type NewLesson struct {
	CourseID string `json:"courseId" validate:"required,identifier"`
	Title    string `json:"title" validate:"notblank"`
	Content  string `json:"content"`
	Duration int32  `json:"duration" validate:"gte=0"`
}

func (nl *NewLesson) Validate() error {
	nl.CourseID = core.CleanString(nl.CourseID, true /* lower */)
	nl.Title = core.CleanString(nl.Title)
	nl.Content = core.CleanString(nl.Content)
	return core.ValidateStruct(nl)
}
