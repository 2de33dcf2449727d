package submission

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

// NoFeedback is stored as feedback until a submission is graded.
const NoFeedback = "None"

type Submission struct {
	SubmissionID string     `bson:"submissionId" json:"submissionId"`
	AssignmentID string     `bson:"assignmentId" json:"assignmentId"`
	StudentID    string     `bson:"studentId" json:"studentId"`
	SubmittedAt  time.Time  `bson:"submittedAt" json:"submittedAt"`
	GradedAt     *time.Time `bson:"gradedAt" json:"gradedAt"` // nil until graded
	Score        int32      `bson:"score" json:"score"`
	Feedback     string     `bson:"feedback" json:"feedback"`
	IsGraded     bool       `bson:"isGraded" json:"isGraded"`
}

func (s Submission) Ref() core.Ref {
	return core.SubmissionRef(s.SubmissionID)
}

// NewSubmission contains information needed to submit work for an assignment.
type NewSubmission struct {
	AssignmentID string `json:"assignmentId" validate:"required,identifier"`
	StudentID    string `json:"studentId" validate:"required,identifier"`
}

func (ns *NewSubmission) Validate() error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID, true /* lower */)
	ns.StudentID = core.CleanString(ns.StudentID, true /* lower */)
	return core.ValidateStruct(ns)
}

// Grade defines the outcome of grading a Submission.
type Grade struct {
	Score    int32  `json:"score" validate:"gte=0"`
	Feedback string `json:"feedback"`
}

func (g *Grade) Validate() error {
	g.Feedback = core.CleanString(g.Feedback)
	return core.ValidateStruct(g)
}
