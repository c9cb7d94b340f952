package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nmm-portal/nmm-api/internal/models"
)

// Custom binding tags
const (
	TagMobile   = "mobile"
	TagRole     = "role"
	TagNotBlank = "notblank"
)

// RegisterBindingValidators adds the portal's tags to a validator and
// reports JSON names in field errors.
func RegisterBindingValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation(TagMobile, func(fl validator.FieldLevel) bool {
		return ValidateMobile(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation(TagRole, func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return ValidateRequired(fl.Field().String())
	})
}
