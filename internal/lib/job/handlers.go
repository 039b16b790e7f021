package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/deppfellow/wedding-rsvp/internal/lib/email"
	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the notification e-mails for job handlers.
type Mailer interface {
	SendRSVPUpdatedEmail(ctx context.Context, to string, invitation model.Invitation) error
}

// InitHandlers builds the dependencies the handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleRSVPUpdatedTask(ctx context.Context, t *asynq.Task) error {
	var p RSVPUpdatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal rsvp updated payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskRSVPUpdated).
		Str("invitee_id", p.Invitation.PrimaryInvitee.ID).
		Logger()

	if j.host == "" {
		log.Warn().Msg("no host e-mail configured, dropping rsvp notification")
		return nil
	}

	log.Info().Msg("processing rsvp notification")

	if err := j.mailer.SendRSVPUpdatedEmail(ctx, j.host, p.Invitation); err != nil {
		log.Error().Err(err).Msg("failed to send rsvp notification")
		return err
	}

	log.Info().Msg("sent rsvp notification")
	return nil
}
