// Package server defines the Server container that owns the application's
// shared resources.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker server (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/config"
	"github.com/elien2016/customers/internal/database"
	"github.com/elien2016/customers/internal/lib/job"
	loggerPkg "github.com/elien2016/customers/internal/logger"
)

// RedisPingTimeout bounds the startup Redis check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; httpServer is configured by
// SetupHTTPServer and run by Start.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// New connects to PostgreSQL and Redis and starts the job workers.
//
// The database is required. Redis is optional at startup: a failed ping is
// logged, the health check reports it and welcome email enqueues are
// paused for job.EnqueueCooldown.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	redisErr := redisClient.Ping(ctx).Err()
	if redisErr != nil {
		logger.Error().Err(redisErr).Msg("Failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)
	if redisErr != nil {
		jobService.Pause()
	}
	if err := jobService.Start(); err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}, nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
//
// http.ErrServerClosed after Shutdown is reported as nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the job workers, Redis and the database pool.
//
// Every resource is released even when an earlier step fails; the first
// error is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
