package model

import "encoding/json"

// Invitation is a read-time composition of one primary invitee and the
// dependents resolved through the relation table.
type Invitation struct {
	PrimaryInvitee Invitee   `json:"primaryInvitee" validate:"required"`
	Dependents     []Invitee `json:"dependents" validate:"dive"`
}

// NewInvitation builds an invitation; a nil dependents slice becomes empty.
func NewInvitation(primary Invitee, dependents []Invitee) Invitation {
	if dependents == nil {
		dependents = []Invitee{}
	}
	return Invitation{
		PrimaryInvitee: primary,
		Dependents:     dependents,
	}
}

// Invitees returns the primary invitee followed by the dependents.
func (i Invitation) Invitees() []Invitee {
	out := make([]Invitee, 0, len(i.Dependents)+1)
	out = append(out, i.PrimaryInvitee)
	return append(out, i.Dependents...)
}

// MarshalJSON keeps "dependents" an array even for a zero Invitation.
func (i Invitation) MarshalJSON() ([]byte, error) {
	type invitation Invitation
	out := invitation(i)
	if out.Dependents == nil {
		out.Dependents = []Invitee{}
	}
	return json.Marshal(out)
}
