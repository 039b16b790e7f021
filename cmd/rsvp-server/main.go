// Command rsvp-server runs the function behind a local HTTP server that
// emulates the API gateway.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/deppfellow/wedding-rsvp/internal/handler"
	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/repository"
	"github.com/deppfellow/wedding-rsvp/internal/router"
	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/deppfellow/wedding-rsvp/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.MustLoadConfig()

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv.DB.Pool)
	services := service.NewServices(repos, srv.Notifier())
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
