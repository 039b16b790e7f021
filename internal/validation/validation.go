// Package validation checks decoded payload params against the rules in
// their `validate` struct tags and turns violations into bad-argument
// errors the client can understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names in messages come from the json tag.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validatable is implemented by params with checks that cannot be
// expressed as tags.
type Validatable interface {
	Validate() error
}

// Struct validates payload and returns a bad-argument error describing the
// first violations, or nil.
func Struct(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return errs.NewBadArgumentError(describe(err))
	}

	if v, ok := payload.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return errs.NewBadArgumentError(err.Error())
		}
	}
	return nil
}

func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := trimRoot(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}

// trimRoot drops the Go struct name validator puts in front of the
// namespace: "FetchInvitationParams.id" -> "id".
func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
