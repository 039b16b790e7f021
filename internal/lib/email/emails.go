package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/wedding-rsvp/internal/model"
)

// GuestLine is one invitee row in a notification.
type GuestLine struct {
	Name    string
	Status  string
	Dietary string
}

// RSVPUpdatedData is the template data for TemplateRSVPUpdated.
type RSVPUpdatedData struct {
	PrimaryName string
	Guests      []GuestLine
}

// NewRSVPUpdatedData flattens invitation into template data.
func NewRSVPUpdatedData(invitation model.Invitation) RSVPUpdatedData {
	data := RSVPUpdatedData{PrimaryName: invitation.PrimaryInvitee.FullName()}

	for _, invitee := range invitation.Invitees() {
		data.Guests = append(data.Guests, GuestLine{
			Name:    invitee.FullName(),
			Status:  rsvpStatus(invitee.RSVP),
			Dietary: invitee.DietaryRequirements,
		})
	}
	return data
}

func rsvpStatus(r model.RSVP) string {
	switch r {
	case model.RSVPComing:
		return "Coming"
	case model.RSVPNotComing:
		return "Not coming"
	default:
		return "No answer yet"
	}
}

// SendRSVPUpdatedEmail tells the host that invitation has been answered.
func (c *Client) SendRSVPUpdatedEmail(ctx context.Context, to string, invitation model.Invitation) error {
	data := NewRSVPUpdatedData(invitation)

	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("RSVP update from %s", data.PrimaryName),
		TemplateRSVPUpdated,
		data,
	)
}
