package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskRSVPUpdated is the job type name stored in Redis.
	TaskRSVPUpdated = "rsvp:updated"
)

// RSVPUpdatedPayload is the JSON payload of TaskRSVPUpdated.
type RSVPUpdatedPayload struct {
	Invitation model.Invitation `json:"invitation"`
}

// NewRSVPUpdatedTask builds the notification task for invitation: up to 3
// retries on the default queue, killed after 30 seconds.
func NewRSVPUpdatedTask(invitation model.Invitation) (*asynq.Task, error) {
	payload, err := json.Marshal(RSVPUpdatedPayload{Invitation: invitation})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRSVPUpdated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
