// Command customers runs the customers REST API.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elien2016/customers/internal/config"
	"github.com/elien2016/customers/internal/database"
	"github.com/elien2016/customers/internal/handler"
	"github.com/elien2016/customers/internal/logger"
	"github.com/elien2016/customers/internal/repository"
	"github.com/elien2016/customers/internal/router"
	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/internal/service"
)

const (
	// DefaultContextTimeout bounds startup migrations and graceful shutdown.
	DefaultContextTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	migrateCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	err = database.Migrate(migrateCtx, &log, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
