package database

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elien2016/customers/internal/config"
)

func testConfig(env string) *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: env},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "p@ss",
			Name:            "customers",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    4,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
	}
}

func TestPoolConfigAppliesTuning(t *testing.T) {
	logger := zerolog.Nop()

	poolConfig, err := PoolConfig(testConfig("production"), &logger, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolConfig.MaxConns)
	assert.Equal(t, int32(4), poolConfig.MinConns)
	assert.Equal(t, 5*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, time.Minute, poolConfig.MaxConnIdleTime)
	assert.Equal(t, "p@ss", poolConfig.ConnConfig.Password)
	assert.Equal(t, "customers", poolConfig.ConnConfig.Database)
	assert.Nil(t, poolConfig.ConnConfig.Tracer)
}

func TestPoolConfigMinConnsNeverExceedsMax(t *testing.T) {
	logger := zerolog.Nop()
	cfg := testConfig("production")
	cfg.Database.MaxOpenConns = 2
	cfg.Database.MaxIdleConns = 10

	poolConfig, err := PoolConfig(cfg, &logger, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), poolConfig.MaxConns)
	assert.Zero(t, poolConfig.MinConns)
}

func TestPoolConfigLocalQueryLogging(t *testing.T) {
	logger := zerolog.Nop().Level(zerolog.DebugLevel)

	poolConfig, err := PoolConfig(testConfig("local"), &logger, nil)
	require.NoError(t, err)

	traceLog, ok := poolConfig.ConnConfig.Tracer.(*tracelog.TraceLog)
	require.True(t, ok, "expected *tracelog.TraceLog, got %T", poolConfig.ConnConfig.Tracer)
	assert.Equal(t, tracelog.LogLevelDebug, traceLog.LogLevel)
}

func TestMigrationsEmbedded(t *testing.T) {
	subtree, err := MigrationsFS()
	require.NoError(t, err)

	content, err := fs.ReadFile(subtree, "001_create_customers.sql")
	require.NoError(t, err)

	create, drop, found := strings.Cut(string(content), "---- create above / drop below ----")
	require.True(t, found)
	assert.Contains(t, create, "CREATE TABLE IF NOT EXISTS customers")
	for _, column := range []string{"first_name", "last_name", "email", "address"} {
		assert.Contains(t, create, column+" TEXT NOT NULL")
	}
	assert.Contains(t, drop, "DROP TABLE IF EXISTS customers")
}
