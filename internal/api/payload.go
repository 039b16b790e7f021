// Package api parses the tagged request payload and dispatches it to the
// invitation service.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/deppfellow/wedding-rsvp/internal/validation"
)

// Function tags accepted in the "function" member of a payload.
const (
	FunctionFetchInvitation  = "fetchInvitation"
	FunctionUpdateInvitation = "updateInvitation"
)

// FetchInvitationParams are the params of fetchInvitation.
type FetchInvitationParams struct {
	ID string `json:"id" validate:"required"`
}

// UpdateInvitationParams are the params of updateInvitation.
type UpdateInvitationParams struct {
	Invitation *model.Invitation `json:"invitation" validate:"required"`
}

// Payload is a decoded request. Exactly one of Fetch and Update is set,
// matching Function.
type Payload struct {
	Function string
	Fetch    *FetchInvitationParams
	Update   *UpdateInvitationParams
}

type rawPayload struct {
	Function string          `json:"function"`
	Params   json.RawMessage `json:"params"`
}

// ParsePayload decodes and validates body. Every failure is a bad-argument
// error.
func ParsePayload(body []byte) (Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return Payload{}, errs.NewBadArgumentError(describeDecodeError(err, "payload"))
	}

	switch raw.Function {
	case FunctionFetchInvitation, FunctionUpdateInvitation:
	case "":
		return Payload{}, errs.NewBadArgumentError("missing function")
	default:
		return Payload{}, errs.NewBadArgumentError(fmt.Sprintf("unknown function %q", raw.Function))
	}

	if params := bytes.TrimSpace(raw.Params); len(params) == 0 || bytes.Equal(params, []byte("null")) {
		return Payload{}, errs.NewBadArgumentError("missing params for " + raw.Function)
	}

	payload := Payload{Function: raw.Function}

	if raw.Function == FunctionFetchInvitation {
		payload.Fetch = &FetchInvitationParams{}
		if err := decodeParams(raw.Params, payload.Fetch); err != nil {
			return Payload{}, err
		}
	} else {
		payload.Update = &UpdateInvitationParams{}
		if err := decodeParams(raw.Params, payload.Update); err != nil {
			return Payload{}, err
		}
	}

	return payload, nil
}

func decodeParams(raw json.RawMessage, params any) error {
	if err := json.Unmarshal(raw, params); err != nil {
		return errs.NewBadArgumentError(describeDecodeError(err, "params"))
	}
	return validation.Struct(params)
}

var rsvpType = reflect.TypeOf(model.RSVP(""))

// describeDecodeError names the offending field for type mismatches and
// hides decoder internals otherwise.
func describeDecodeError(err error, what string) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Type == nil {
		return "malformed " + what
	}

	field := typeErr.Field
	if field == "" {
		field = what
	}
	return fmt.Sprintf("%s must be %s", field, expectedJSON(typeErr.Type))
}

func expectedJSON(t reflect.Type) string {
	if t == rsvpType {
		return "true, false or null"
	}

	switch t.Kind() {
	case reflect.Pointer:
		return expectedJSON(t.Elem())
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "a number"
	}
}
