package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents one failed rule on one field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with portal-specific rules.
type Validator struct {
	validate *validator.Validate
}

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	// Report fields by their JSON names so API errors match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Academic year like "2024-25"
	validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return academicYearPattern.MatchString(fl.Field().String())
	})

	// Semester like "1st" .. "8th"
	validate.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		sem := strings.TrimSpace(fl.Field().String())
		switch sem {
		case "1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th":
			return true
		}
		return false
	})

	return &Validator{validate: validate}
}

// Validate runs struct tag validation and converts the result.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: errorMessage(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}
	return errors
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "academic_year":
		return "must look like 2024-25"
	case "semester":
		return "must be a semester between 1st and 8th"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
