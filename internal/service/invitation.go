package service

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/model"
)

type InvitationService struct {
	invitees  InviteeStore
	relations RelationStore
	notifier  Notifier
}

func NewInvitationService(invitees InviteeStore, relations RelationStore, notifier Notifier) *InvitationService {
	return &InvitationService{
		invitees:  invitees,
		relations: relations,
		notifier:  notifier,
	}
}

// FetchInvitation resolves the invitation whose primary invitee is id.
//
// Queries run one after another: relations, then dependents (only when
// there are any), then the primary invitee.
func (s *InvitationService) FetchInvitation(ctx context.Context, id string) (model.Invitation, error) {
	log := logger.FromContext(ctx)

	dependentIDs, err := s.relations.GetDependents(ctx, id)
	if err != nil {
		return model.Invitation{}, err
	}

	dependents := []model.Invitee{}
	if len(dependentIDs) > 0 {
		dependents, err = s.invitees.GetInviteesByIDs(ctx, dependentIDs)
		if err != nil {
			return model.Invitation{}, err
		}
	}

	primary, err := s.invitees.GetInviteeByID(ctx, id)
	if err != nil {
		return model.Invitation{}, err
	}

	log.Info().
		Str("invitee_id", id).
		Int("dependents", len(dependents)).
		Msg("invitation fetched")

	return model.NewInvitation(primary, dependents), nil
}

// UpdateInvitation writes rsvp and dietary requirements of every invitee in
// invitation, primary first. The first failure stops the sequence; rows
// written before it stay written.
func (s *InvitationService) UpdateInvitation(ctx context.Context, invitation model.Invitation) (model.Invitation, error) {
	log := logger.FromContext(ctx)

	primary, err := s.invitees.UpdateInvitee(ctx, invitation.PrimaryInvitee.UpdateParams())
	if err != nil {
		return model.Invitation{}, err
	}

	dependents := make([]model.Invitee, 0, len(invitation.Dependents))
	for _, dependent := range invitation.Dependents {
		updated, err := s.invitees.UpdateInvitee(ctx, dependent.UpdateParams())
		if err != nil {
			return model.Invitation{}, err
		}
		dependents = append(dependents, updated)
	}

	result := model.NewInvitation(primary, dependents)

	log.Info().
		Str("invitee_id", primary.ID).
		Str("rsvp", primary.RSVP.String()).
		Int("dependents", len(dependents)).
		Msg("invitation updated")

	s.notify(ctx, result)

	return result, nil
}

func (s *InvitationService) notify(ctx context.Context, invitation model.Invitation) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.EnqueueRSVPUpdated(ctx, invitation); err != nil {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("invitee_id", invitation.PrimaryInvitee.ID).
			Msg("failed to enqueue rsvp notification")
	}
}
