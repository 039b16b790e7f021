// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - the request path enqueues tasks through asynq.Client
//   - the worker binary runs asynq.Server, which executes the handlers
package job

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Enqueuer is the part of asynq.Client used for producing tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and, in the worker, the
// server (task execution).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	logger *zerolog.Logger
	mailer Mailer
	host   string
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	}
}

// NewJobClient creates an enqueue-only JobService for the request path. It
// has no worker server, so Start fails on it.
func NewJobClient(logger *zerolog.Logger, cfg *config.Config) *JobService {
	return &JobService{
		Client: asynq.NewClient(redisOpt(cfg)),
		logger: logger,
		host:   cfg.Integration.HostEmail,
	}
}

// NewJobService creates a JobService with both the client and the worker
// server, configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	j := NewJobClient(logger, cfg)
	j.server = asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.InfoLevel,
		},
	)
	return j
}

// Mux registers the task handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRSVPUpdated, j.handleRSVPUpdatedTask)
	return mux
}

// Start starts the worker server in the background.
func (j *JobService) Start() error {
	if j.server == nil {
		return errors.New("job service has no worker server")
	}

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return errors.Wrap(err, "failed to start job server")
	}
	return nil
}

// EnqueueRSVPUpdated queues a host notification for invitation.
func (j *JobService) EnqueueRSVPUpdated(ctx context.Context, invitation model.Invitation) error {
	task, err := NewRSVPUpdatedTask(invitation)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrapf(err, "failed to enqueue %s", TaskRSVPUpdated)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("invitee_id", invitation.PrimaryInvitee.ID).
		Msg("rsvp notification queued")

	return nil
}

// Stop stops the worker server, if any, and closes the client.
func (j *JobService) Stop() {
	if j.server != nil {
		j.logger.Info().Msg("stopping background job server")
		j.server.Shutdown()
	}
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
