package core

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestDescribe(t *testing.T) {
	userRef := UserRef("7f1c")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "ok"},
		{
			name: "validation",
			err:  NewValidationError(errors.New("invalid input"), FieldError{Field: "email", Error: "must match pattern"}),
			want: "validation failed: invalid input (email: must match pattern)",
		},
		{
			name: "duplicate key",
			err:  &DuplicateKeyError{Collection: "users", Index: "email_1", Key: `{ email: "a@b.co" }`},
			want: `uniqueness violated: duplicate key in users (index email_1): { email: "a@b.co" }`,
		},
		{
			name: "prerequisite",
			err:  NewPrerequisiteError("enrollments", "students", "published courses"),
			want: "cannot seed enrollments: no students or published courses found",
		},
		{name: "precondition", err: NewPreconditionError(userRef, "already inactive"), want: "user '7f1c': already inactive"},
		{name: "not found", err: NewNotFoundError(CourseRef("c1")), want: "course 'c1' not found"},
		{name: "wrapped", err: errors.Wrap(NewNotFoundError(userRef), "soft delete"), want: "user '7f1c' not found"},
		{name: "other", err: fmt.Errorf("connection refused"), want: "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := errors.Wrap(NewPreconditionError(CourseRef("c1"), "already published"), "publish")
	if !IsPrecondition(err) {
		t.Errorf("IsPrecondition(%v) = false", err)
	}
	if IsNotFound(err) || IsValidation(err) || IsDuplicateKey(err) || IsPrerequisite(err) {
		t.Errorf("%v matched more than one kind", err)
	}
}
