package service

import (
	"github.com/deppfellow/wedding-rsvp/internal/repository"
)

type Services struct {
	Invitation *InvitationService
}

// NewServices wires the services on top of repos. notifier may be nil when
// background jobs are not configured.
func NewServices(repos *repository.Repositories, notifier Notifier) *Services {
	return &Services{
		Invitation: NewInvitationService(repos.Invitees, repos.Relations, notifier),
	}
}
