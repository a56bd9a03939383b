// Package validator plugs go-playground/validator into echo and reports
// failures as domain validation errors keyed by JSON field path.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds a validator that names fields by their json tag.
func New() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &RequestValidator{validate: validate}
}

// Validate returns a *domainerrors.ValidationError listing every rejected field.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, "failed to validate request")
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

// fieldPath drops the struct name: "PlaceOrderInput.items[0].quantity" becomes "items[0].quantity".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

func message(fe validator.FieldError) string {
	isSlice := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		switch {
		case isSlice && fe.Param() == "1":
			return "At least one item is required."
		case isSlice:
			return fmt.Sprintf("Must contain at least %s items.", fe.Param())
		case fe.Kind() == reflect.String:
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		default:
			return fmt.Sprintf("Must be at least %s.", fe.Param())
		}
	case "max":
		switch {
		case isSlice:
			return fmt.Sprintf("Must contain at most %s items.", fe.Param())
		case fe.Kind() == reflect.String:
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			return fmt.Sprintf("Must be at most %s.", fe.Param())
		}
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}
