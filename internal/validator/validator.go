package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError holds the full field -> message map for a request, so a
// client can display every problem at once instead of the first one.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report field names from json tags, not Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate checks the struct and returns *ValidationError on violations.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	case "is-user-role":
		return "Must be one of: PATIENT, PROFESSIONAL, ADMIN"
	case "is-user-status":
		return "Must be one of: PENDING, COMPLETED, VERIFIED, BLOCKED"
	case "is-modality":
		return "Must be one of: VIRTUAL, HOME_VISIT, CLINIC"
	case "is-gender":
		return "Must be a valid gender value"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
