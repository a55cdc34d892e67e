package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/taletique/tailor-portal/internal/domain"
)

// FieldError reports a single invalid field in a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the per-field error report returned for an invalid body.
type Errors []FieldError

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for _, fe := range e {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", "))
}

var validate = newValidator()

// newValidator wires the enum checks against the domain types so the enum
// value lists are declared once, in the domain package.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return domain.OrderStatus(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		return domain.ServiceType(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return domain.Priority(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).IsValid()
	})

	return v
}

// Struct validates an input shape and returns an Errors report on failure.
func Struct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must not be empty"
	case "order_status":
		return fmt.Sprintf("must be one of %s", joinValues(domain.AllOrderStatuses))
	case "service_type":
		return fmt.Sprintf("must be one of %s", joinValues(domain.AllServiceTypes))
	case "priority":
		return fmt.Sprintf("must be one of %s", joinValues(domain.AllPriorities))
	case "role":
		return fmt.Sprintf("must be one of %s", joinValues(domain.AllRoles))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}
