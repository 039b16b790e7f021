// Command rsvp-worker processes queued rsvp notifications and e-mails them
// to the host.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/deppfellow/wedding-rsvp/internal/lib/job"
	"github.com/deppfellow/wedding-rsvp/internal/logger"
)

func main() {
	cfg := config.MustLoadConfig()

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("RSVP_REDIS__ADDRESS is required for the worker")
	}
	if cfg.Integration.HostEmail == "" {
		log.Warn().Msg("RSVP_INTEGRATION__HOST_EMAIL is empty, notifications will be dropped")
	}

	jobs := job.NewJobService(&log, cfg)
	jobs.InitHandlers(cfg, &log)

	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	jobs.Stop()
	log.Info().Msg("worker exited properly")
}
