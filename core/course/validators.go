package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/eduhub/eduhub/core"
)

var (
	levelTag  = "level"
	levelText = "level must be beginner, intermediate or advanced"
)

func init() {
	_ = core.Validate.RegisterValidation(levelTag, levelValidation)
	core.RegisterCustomTranslation(levelTag, levelText)
}

func levelValidation(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	for _, l := range Levels {
		if level == l {
			return true
		}
	}
	return false
}
