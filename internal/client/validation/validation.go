// Package validation checks user-entered payloads before they are sent to the
// backend. Failures are reported per form field as *Error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

// Error maps form field names (backend JSON keys) to a message.
type Error struct {
	Fields map[string]string
}

func New(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "" when the field is valid.
func (e *Error) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if form := fld.Tag.Get("form"); form != "" {
			return form
		}
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		return models.BloodType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("reqstatus", func(fl validator.FieldLevel) bool {
		return models.RequestStatus(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates v against its `validate` tags. It returns nil or *Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "bloodtype":
		return "must be a valid blood type"
	case "reqstatus":
		return "must be one of: Pending, Completed, Cancelled"
	case "eqfield":
		return "does not match"
	case "nefield":
		return "must differ from " + fe.Param()
	}
	return "is invalid"
}

// ParseQuantity parses a user-entered quantity, which must be a
// non-negative integer.
func ParseQuantity(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(field, "must be a whole number")
	}
	if n < 0 {
		return 0, New(field, "must not be negative")
	}
	return n, nil
}

// ParseID parses a backend record id.
func ParseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, New(field, "must be a positive number")
	}
	return id, nil
}
