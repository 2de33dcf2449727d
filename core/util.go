package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var nowFunc = time.Now // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStrings cleans every element of `ss`, dropping blanks and duplicates while keeping order.
func CleanStrings(ss []string) []string {
	out := make([]string, 0, len(ss))
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		s = CleanString(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Now returns the current moment in UTC, truncated to the millisecond precision of stored dates.
func Now() time.Time {
	return nowFunc().UTC().Truncate(time.Millisecond)
}

// SetNowFunc replaces the clock; the returned func restores the previous one.
func SetNowFunc(fn func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}

// Days returns a duration of n days.
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// NewID generates a logical entity identifier, distinct from any storage primary key.
func NewID() string {
	return uuid.New().String()
}

// IsCanonicalID tells whether s is a UUID in its lowercase hyphenated form.
// Braced, urn:uuid: and unhyphenated forms are rejected.
func IsCanonicalID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}

// ParseID trims and lowers `s` and fails with a *ValidationError unless it is then a canonical identifier.
func ParseID(field, s string) (string, error) {
	id := CleanString(s, true /* lower */)
	if !IsCanonicalID(id) {
		return "", NewValidationError(
			errors.Errorf("invalid %s %q", field, s),
			FieldError{Field: field, Error: "must be a UUID identifier"},
		)
	}
	return id, nil
}

type Kind string

const (
	KindUser       Kind = "user"
	KindCourse     Kind = "course"
	KindLesson     Kind = "lesson"
	KindAssignment Kind = "assignment"
	KindEnrollment Kind = "enrollment"
	KindSubmission Kind = "submission"
)

// Ref names an entity referenced by its logical identifier.
type Ref struct {
	Kind Kind
	ID   string
}

func (r Ref) String() string {
	return string(r.Kind) + " '" + r.ID + "'"
}

func UserRef(id string) Ref       { return Ref{Kind: KindUser, ID: id} }
func CourseRef(id string) Ref     { return Ref{Kind: KindCourse, ID: id} }
func LessonRef(id string) Ref     { return Ref{Kind: KindLesson, ID: id} }
func AssignmentRef(id string) Ref { return Ref{Kind: KindAssignment, ID: id} }
func EnrollmentRef(id string) Ref { return Ref{Kind: KindEnrollment, ID: id} }
func SubmissionRef(id string) Ref { return Ref{Kind: KindSubmission, ID: id} }
