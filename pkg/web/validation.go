package web

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return validate
}

// validationMessage turns validator errors into a short sentence.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fieldError.Field()+" is required")
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}

	return strings.Join(messages, "; ")
}
