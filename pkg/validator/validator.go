package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse describes one failed constraint. Field is the top-level JSON name of the field.
type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Field       string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

// ValidationError is returned by EchoValidator when a request body fails its tags
type ValidationError struct {
	Errors []*ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	first := e.Errors[0]
	return fmt.Sprintf("validation failed on %s (%s)", first.FailedField, first.Tag)
}

// Field returns the top-level field of the first failure
func (e *ValidationError) Field() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Field
}

var phonePattern = regexp.MustCompile(`^\(\d{3}\)-\d{3}-\d{2}-\d{2}$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// phone: (ddd)-ddd-dd-dd
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	// ymd: calendar date in YYYY-MM-DD
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	return v
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid"}}
	}

	for _, fe := range validationErrors {
		out = append(out, &ErrorResponse{
			FailedField: trimRoot(fe.Namespace()),
			Field:       topLevelField(fe.Namespace()),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}

// EchoValidator plugs ValidateStruct into echo.Context.Validate
type EchoValidator struct{}

func (EchoValidator) Validate(i interface{}) error {
	if errs := ValidateStruct(i); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// trimRoot drops the struct type name from a namespace: "OrderRequest.products[0].qty" -> "products[0].qty"
func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func topLevelField(namespace string) string {
	field := trimRoot(namespace)
	if i := strings.IndexAny(field, ".["); i >= 0 {
		field = field[:i]
	}
	return field
}
