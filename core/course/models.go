package course

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

// Levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var (
	Levels     = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}
	Categories = []string{"Data Science", "Web Development", "Finance", "DevOps", "Design"}
	TagsPool   = []string{"Python", "MongoDB", "React", "Kubernetes", "Pandas", "Excel"}
)

type Rating struct {
	StudentID string    `bson:"studentId" json:"studentId"`
	Rating    float64   `bson:"rating" json:"rating"`
	RatedAt   time.Time `bson:"ratedAt" json:"ratedAt"` // UTC
}

type Course struct {
	CourseID     string    `bson:"courseId" json:"courseId"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	InstructorID string    `bson:"instructorId" json:"instructorId"`
	Category     string    `bson:"category" json:"category"`
	Level        string    `bson:"level" json:"level"`
	Duration     float64   `bson:"duration" json:"duration"` // hours
	Price        float64   `bson:"price" json:"price"`       // USD
	Tags         []string  `bson:"tags" json:"tags"`
	Ratings      []Rating  `bson:"ratings" json:"ratings"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"` // UTC
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"` // UTC
	IsPublished  bool      `bson:"isPublished" json:"isPublished"`
}

func (c Course) Ref() core.Ref {
	return core.CourseRef(c.CourseID)
}

// AverageRating returns the mean of all ratings, 0 when there are none.
func (c Course) AverageRating() float64 {
	if len(c.Ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range c.Ratings {
		sum += r.Rating
	}
	return sum / float64(len(c.Ratings))
}

// NewCourse contains information needed to create a new Course.
// When InstructorID is empty, any instructor is picked.
type NewCourse struct {
	InstructorID string   `json:"instructorId" validate:"omitempty,identifier"`
	Title        string   `json:"title" validate:"notblank"`
	Description  string   `json:"description"`
	Category     string   `json:"category" validate:"notblank"`
	Level        string   `json:"level" validate:"required,level"`
	Duration     float64  `json:"duration" validate:"gte=0"`
	Price        float64  `json:"price" validate:"gte=0"`
	Tags         []string `json:"tags"`
	IsPublished  bool     `json:"isPublished"`
}

func (nc *NewCourse) Validate() error {
	nc.InstructorID = core.CleanString(nc.InstructorID, true /* lower */)
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Category = core.CleanString(nc.Category)
	nc.Level = core.CleanString(nc.Level, true /* lower */)
	nc.Tags = core.CleanStrings(nc.Tags)
	return core.ValidateStruct(nc)
}

// NewRating is a student's score for a published course.
type NewRating struct {
	StudentID string  `json:"studentId" validate:"required,identifier"`
	Rating    float64 `json:"rating" validate:"gte=1,lte=5"`
}

func (nr *NewRating) Validate() error {
	nr.StudentID = core.CleanString(nr.StudentID, true /* lower */)
	return core.ValidateStruct(nr)
}
