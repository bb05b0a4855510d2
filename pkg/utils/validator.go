package utils

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report argument names as clients send them
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct returns a message per failing field, keyed by json name.
func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: data is not a struct
		return map[string]string{"input": err.Error()}
	}

	msgs := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs[fe.Field()] = fieldMessage(fe)
	}
	return msgs
}

// ValidateRequest is ValidateStruct folded into a single BAD_USER_INPUT error.
func ValidateRequest(data any) error {
	msgs := ValidateStruct(data)
	if len(msgs) == 0 {
		return nil
	}
	return BadUserInput("validation failed: " + FormatValidationErrors(msgs))
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// FormatValidationErrors joins msgs into one line ordered by field.
func FormatValidationErrors(msgs map[string]string) string {
	fields := make([]string, 0, len(msgs))
	for field := range msgs {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+msgs[field])
	}
	return strings.Join(parts, "; ")
}
