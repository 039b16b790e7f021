package email

import "github.com/deppfellow/wedding-rsvp/internal/model"

// PreviewData contains sample template data for local preview, keyed by
// template name.
var PreviewData = map[Template]any{
	TemplateRSVPUpdated: NewRSVPUpdatedData(model.NewInvitation(
		model.Invitee{ID: "preview-1", FirstName: "Jane", LastName: "Doe", RSVP: model.RSVPComing, DietaryRequirements: "Vegetarian"},
		[]model.Invitee{
			{ID: "preview-2", FirstName: "Sam", LastName: "Doe", RSVP: model.RSVPNotComing},
			{ID: "preview-3", FirstName: "Alex", LastName: "Doe"},
		},
	)),
}
