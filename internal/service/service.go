// Package service contains the business logic.
//
// It sits between the api and repository layers. It receives validated
// payload params, resolves invitations through the repositories, and
// queues follow-up work for the background worker.
package service

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/model"
)

// InviteeStore is the invitee persistence used by the services.
type InviteeStore interface {
	GetInviteeByID(ctx context.Context, id string) (model.Invitee, error)
	GetInviteesByIDs(ctx context.Context, ids []string) ([]model.Invitee, error)
	UpdateInvitee(ctx context.Context, params model.UpdateInviteeParams) (model.Invitee, error)
}

// RelationStore resolves dependents of a primary invitee.
type RelationStore interface {
	GetDependents(ctx context.Context, id string) ([]string, error)
}

// Notifier queues a host notification for an updated invitation.
type Notifier interface {
	EnqueueRSVPUpdated(ctx context.Context, invitation model.Invitation) error
}
