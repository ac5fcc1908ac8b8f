package validators

import (
	"excelbot/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// IsSubject accepts only the exact names of the allowed subjects.
func IsSubject(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, ok = entity.ParseSubject(val)
	return ok
}

// New returns a validator with the bot's custom rules registered.
func New() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("subject", IsSubject)
	return validate
}
