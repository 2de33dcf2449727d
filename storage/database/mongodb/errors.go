package mongodb

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
)

const documentValidationFailure = 121

var dupKeyRegex = regexp.MustCompile(`index: (\S+) dup key: (\{.*\})`)

// translate maps driver write errors onto the core error kinds.
func translate(err error, collection string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		dErr := &core.DuplicateKeyError{Collection: collection}
		if m := dupKeyRegex.FindStringSubmatch(err.Error()); m != nil {
			dErr.Index, dErr.Key = m[1], m[2]
		}
		return dErr
	}
	if isValidationFailure(err) {
		return core.NewValidationError(
			errors.Errorf("document failed validation for %s", collection),
			core.FieldError{Field: collection, Error: err.Error()},
		)
	}
	return errors.Wrapf(err, "writing %s", collection)
}

func isValidationFailure(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == documentValidationFailure {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == documentValidationFailure
	}
	return false
}

// notFound maps a missing document onto a *core.NotFoundError.
func notFound(err error, ref core.Ref) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.NewNotFoundError(ref)
	}
	return errors.Wrapf(err, "fetching %s", ref)
}
