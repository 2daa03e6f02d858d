package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	reportPrefixPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)
	rucPattern          = regexp.MustCompile(`^\d{11}$`)
)

// SetupValidator configures the binding validator: error messages carry the
// JSON or form field name instead of the Go struct field, and the custom
// report_prefix tag is registered.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("report_prefix", func(fl validator.FieldLevel) bool {
		return reportPrefixPattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("ruc", func(fl validator.FieldLevel) bool {
		return rucPattern.MatchString(fl.Field().String())
	})
}

// ValidationMessage turns a binding error into a readable message. Errors
// that are not validator errors collapse to a generic message.
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request"
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, e.Field()+": "+validationMessage(e))
	}
	return strings.Join(parts, "; ")
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "uuid":
		return "invalid UUID format"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "report_prefix":
		return "must be 1 to 10 uppercase letters"
	case "ruc":
		return "must be exactly 11 digits"
	default:
		return "invalid value"
	}
}
