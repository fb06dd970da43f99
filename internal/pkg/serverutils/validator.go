package serverutils

import (
	"report-service-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into the
// validation error kind so the error middleware answers 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return apperror.Validation("field '%s' failed on '%s' validation", first.Field(), first.Tag())
		}
		return apperror.Validation("invalid request body")
	}
	return nil
}
