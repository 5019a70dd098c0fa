package config

import (
	"fmt"
	"slices"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: logging, New Relic APM and health checks.
//
// It is optional at the root level (pointer in Config). If omitted,
// defaults are injected.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment splits telemetry by environment (production, local, ...).
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic" validate:"required"`
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks queries slower than this as slow.
	// Expects a duration string such as "100ms".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables the agent.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by GET /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval is kept for external pollers; validator expects >= 1s.
	Interval time.Duration `koanf:"interval" validate:"min=1s"`

	// Timeout bounds each dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks lists the dependencies to ping ("database", "redis").
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides a safe set of defaults.
//
// Used when Config.Observability is nil (not provided via env).
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // mixed log formats otherwise
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate applies custom validation rules that go beyond struct tags.
//
// Returns nil if configuration is valid, otherwise an error describing the
// first failure.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// Production defaults to "info" and development to "debug" when no level
// is set; otherwise the configured value wins.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// ShouldCheck reports whether the named dependency is part of health checks.
func (c HealthChecksConfig) ShouldCheck(name string) bool {
	return c.Enabled && slices.Contains(c.Checks, name)
}
