// Package job runs the welcome email queue on Asynq and Redis.
//
// The API process both enqueues tasks and runs the workers that send them.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/config"
	"github.com/elien2016/customers/internal/lib/email"
)

// EnqueueCooldown is how long enqueues are refused after Redis failed.
const EnqueueCooldown = 30 * time.Second

// ErrQueueUnavailable is returned while enqueues are paused by a recent
// Redis failure.
var ErrQueueUnavailable = errors.New("job queue unavailable")

// JobService pairs the Asynq enqueue client with the worker server.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	mailer WelcomeSender
	logger *zerolog.Logger

	// pausedUntil holds unix nanoseconds; zero means enqueues are allowed.
	pausedUntil atomic.Int64
}

// NewJobService creates a JobService backed by the Redis instance in cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger:   &asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		mailer: email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start starts the background worker server. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("starting job server: %w", err)
	}

	return nil
}

// Pause refuses enqueues for EnqueueCooldown. It is called when Redis is
// found unreachable, so creates do not each wait on a dead connection.
func (j *JobService) Pause() {
	j.pausedUntil.Store(time.Now().Add(EnqueueCooldown).UnixNano())
}

// Paused reports whether enqueues are currently refused.
func (j *JobService) Paused() bool {
	return time.Now().UnixNano() < j.pausedUntil.Load()
}

// EnqueueWelcomeEmail schedules the welcome email for a new customer.
//
// While paused it fails fast with ErrQueueUnavailable. A failed enqueue
// pauses the service.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error {
	if j.Paused() {
		return ErrQueueUnavailable
	}

	task, err := NewWelcomeEmailTask(to, firstName)
	if err != nil {
		return fmt.Errorf("building welcome email task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		j.Pause()
		return fmt.Errorf("enqueueing welcome email task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued welcome email task")

	return nil
}

// Stop shuts the worker server down and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
