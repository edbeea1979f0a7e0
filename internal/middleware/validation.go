package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationConfig represents validation middleware configuration
type ValidationConfig struct {
	CustomErrorMessages map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomErrorMessages: map[string]string{
			"required": "Field is required",
			"min":      "Value must not be negative",
		},
	}
}

// RegisterValidation makes gin's validator report json/form field names
// instead of Go struct field names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

func validationErrors(errs validator.ValidationErrors, config ValidationConfig) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		msg := config.CustomErrorMessages[e.Tag()]
		if msg == "" {
			msg = e.Error()
		}
		out = append(out, ValidationError{
			Field:   e.Field(),
			Message: msg,
		})
	}
	return out
}
