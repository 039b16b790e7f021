// Package model holds the invitation records shared by every layer.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// RSVP is an invitee's answer to the invitation.
//
// It is stored as TEXT in the invitee table and travels over the wire as a
// nullable boolean: true (coming), false (not coming) or null (unknown).
type RSVP string

const (
	RSVPUnknown   RSVP = "Unknown"
	RSVPComing    RSVP = "Coming"
	RSVPNotComing RSVP = "NotComing"
)

// ParseRSVP maps a stored rsvp value onto an RSVP. Anything that is not
// Coming or NotComing is unknown.
func ParseRSVP(s string) RSVP {
	switch RSVP(s) {
	case RSVPComing:
		return RSVPComing
	case RSVPNotComing:
		return RSVPNotComing
	default:
		return RSVPUnknown
	}
}

// RSVPFromBool converts the wire representation into an RSVP.
func RSVPFromBool(coming *bool) RSVP {
	switch {
	case coming == nil:
		return RSVPUnknown
	case *coming:
		return RSVPComing
	default:
		return RSVPNotComing
	}
}

// Bool returns the wire representation; nil means unknown.
func (r RSVP) Bool() *bool {
	var b bool
	switch ParseRSVP(string(r)) {
	case RSVPComing:
		b = true
	case RSVPNotComing:
		b = false
	default:
		return nil
	}
	return &b
}

func (r RSVP) String() string {
	return string(ParseRSVP(string(r)))
}

func (r RSVP) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Bool())
}

func (r *RSVP) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = RSVPUnknown
		return nil
	}

	var coming bool
	if err := json.Unmarshal(data, &coming); err != nil {
		// Report against RSVP so the decoder attaches the field path.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &json.UnmarshalTypeError{Value: typeErr.Value, Type: reflect.TypeOf(RSVP("")), Offset: typeErr.Offset}
		}
		return err
	}
	*r = RSVPFromBool(&coming)
	return nil
}

// Invitee is a person with an RSVP and dietary-requirements record.
type Invitee struct {
	ID                  string `json:"id" db:"id" validate:"required"`
	FirstName           string `json:"fname" db:"fname"`
	LastName            string `json:"lname" db:"lname"`
	RSVP                RSVP   `json:"rsvp" db:"rsvp"`
	DietaryRequirements string `json:"dietaryRequirements" db:"dietary_requirements"`
}

// FullName joins first and last name for display.
func (i Invitee) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// Relation links a parent invitee to one of its dependents.
type Relation struct {
	Parent string `db:"parent"`
	Child  string `db:"child"`
}

// UpdateInviteeParams are the fields an RSVP writes back. Names are never updated.
type UpdateInviteeParams struct {
	ID                  string
	RSVP                RSVP
	DietaryRequirements string
}

// UpdateParams derives the write-back fields from an invitee.
func (i Invitee) UpdateParams() UpdateInviteeParams {
	return UpdateInviteeParams{
		ID:                  i.ID,
		RSVP:                ParseRSVP(string(i.RSVP)),
		DietaryRequirements: i.DietaryRequirements,
	}
}
