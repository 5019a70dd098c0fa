// Package database owns the PostgreSQL connection pool that backs the
// customers store.
//
// It handles:
//   - turning config into a pgxpool config (DSN and pool tuning)
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
//   - schema migrations (see Migrate)
package database

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/config"
	loggerConfig "github.com/elien2016/customers/internal/logger"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans a pgx query trace out to several tracers.
//
// pgx only has a single Tracer slot in ConnConfig, so New Relic and the
// local SQL logger are chained through this adapter.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// New creates a PostgreSQL connection pool with instrumentation and pings it.
//
// loggerService may be nil; New Relic tracing is only attached when it holds
// an application.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := PoolConfig(cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	// Fail fast if the database is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

// PoolConfig builds the pgxpool config: connection string, pool limits and
// query tracers.
func PoolConfig(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	db := cfg.Database
	if db.MaxOpenConns > 0 {
		pgxPoolConfig.MaxConns = int32(db.MaxOpenConns)
	}
	if db.MaxIdleConns > 0 && int32(db.MaxIdleConns) <= pgxPoolConfig.MaxConns {
		pgxPoolConfig.MinConns = int32(db.MaxIdleConns)
	}
	if db.ConnMaxLifetime > 0 {
		pgxPoolConfig.MaxConnLifetime = time.Duration(db.ConnMaxLifetime) * time.Second
	}
	if db.ConnMaxIdleTime > 0 {
		pgxPoolConfig.MaxConnIdleTime = time.Duration(db.ConnMaxIdleTime) * time.Second
	}

	var tracers []pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL query logging is noisy, so it is only enabled locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return pgxPoolConfig, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
