package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports a candidate document or input that violates its schema.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	msg := ""
	if err.Err != nil {
		msg = err.Err.Error()
	}
	if len(err.Fields) == 0 {
		return msg
	}
	parts := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	if msg == "" {
		return strings.Join(parts, "; ")
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

// DuplicateKeyError reports a write colliding with a unique index.
type DuplicateKeyError struct {
	Collection string
	Index      string
	Key        string
}

func (err DuplicateKeyError) Error() string {
	if err.Key == "" {
		return fmt.Sprintf("duplicate key in %s (index %s)", err.Collection, err.Index)
	}
	return fmt.Sprintf("duplicate key in %s (index %s): %s", err.Collection, err.Index, err.Key)
}

// PrerequisiteError reports that an operation needs entities that do not exist yet.
type PrerequisiteError struct {
	Entity  string
	Missing []string
}

func NewPrerequisiteError(entity string, missing ...string) error {
	return &PrerequisiteError{Entity: entity, Missing: missing}
}

func (err PrerequisiteError) Error() string {
	return fmt.Sprintf("cannot seed %s: no %s found", err.Entity, strings.Join(err.Missing, " or "))
}

// PreconditionError reports a state-changing operation whose precondition does not hold.
// The operation did not write anything.
type PreconditionError struct {
	Ref    Ref
	Reason string
}

func NewPreconditionError(ref Ref, reason string) error {
	return &PreconditionError{Ref: ref, Reason: reason}
}

func (err PreconditionError) Error() string {
	return err.Ref.String() + ": " + err.Reason
}

// NotFoundError reports a lookup by logical identifier that yielded nothing.
type NotFoundError struct {
	Ref Ref
}

func NewNotFoundError(ref Ref) error {
	return &NotFoundError{Ref: ref}
}

func (err NotFoundError) Error() string {
	return err.Ref.String() + " not found"
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsDuplicateKey(err error) bool {
	var dErr *DuplicateKeyError
	return errors.As(err, &dErr)
}

func IsPrerequisite(err error) bool {
	var pErr *PrerequisiteError
	return errors.As(err, &pErr)
}

func IsPrecondition(err error) bool {
	var pErr *PreconditionError
	return errors.As(err, &pErr)
}

func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// Describe renders the status reason of an operation outcome.
func Describe(err error) string {
	var (
		vErr  *ValidationError
		dErr  *DuplicateKeyError
		prErr *PrerequisiteError
		pcErr *PreconditionError
		nfErr *NotFoundError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &vErr):
		return "validation failed: " + vErr.Error()
	case errors.As(err, &dErr):
		return "uniqueness violated: " + dErr.Error()
	case errors.As(err, &prErr):
		return prErr.Error()
	case errors.As(err, &pcErr):
		return pcErr.Error()
	case errors.As(err, &nfErr):
		return nfErr.Error()
	default:
		return err.Error()
	}
}
