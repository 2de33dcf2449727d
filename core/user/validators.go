package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/eduhub/eduhub/core"
)

var (
	roleTag  = "role"
	roleText = "role must be student or instructor"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// roleValidation checks that the provided role is one of Roles
func roleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range Roles {
		if role == r {
			return true
		}
	}
	return false
}
