package api

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/model"
)

// InvitationService is the business logic behind the two functions.
type InvitationService interface {
	FetchInvitation(ctx context.Context, id string) (model.Invitation, error)
	UpdateInvitation(ctx context.Context, invitation model.Invitation) (model.Invitation, error)
}

type Dispatcher struct {
	invitations InvitationService
}

func NewDispatcher(invitations InvitationService) *Dispatcher {
	return &Dispatcher{invitations: invitations}
}

// Handle routes payload to the matching service operation. The request
// logger in ctx is tagged with the function for everything downstream.
func (d *Dispatcher) Handle(ctx context.Context, payload Payload) (model.Invitation, error) {
	log := logger.FromContext(ctx).With().Str("function", payload.Function).Logger()
	ctx = logger.WithContext(ctx, log)

	switch {
	case payload.Fetch != nil:
		log.Debug().Str("invitee_id", payload.Fetch.ID).Msg("dispatching fetchInvitation")
		return d.invitations.FetchInvitation(ctx, payload.Fetch.ID)
	case payload.Update != nil:
		log.Debug().Str("invitee_id", payload.Update.Invitation.PrimaryInvitee.ID).Msg("dispatching updateInvitation")
		return d.invitations.UpdateInvitation(ctx, *payload.Update.Invitation)
	default:
		return model.Invitation{}, errs.NewBadArgumentError("empty payload")
	}
}

// HandleBody parses body and dispatches it.
func (d *Dispatcher) HandleBody(ctx context.Context, body []byte) (model.Invitation, error) {
	payload, err := ParsePayload(body)
	if err != nil {
		return model.Invitation{}, err
	}
	return d.Handle(ctx, payload)
}
