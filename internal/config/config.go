// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the CUSTOMERS_ prefix. The prefix is removed and
	the rest is lowercased; "." separates nesting levels:

	  CUSTOMERS_SERVER.PORT -> server.port -> Config.Server.Port
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "CUSTOMERS_"

// ServiceName identifies this service in logs, traces and APM dashboards.
const ServiceName = "customers"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimitRPS is the per-client request rate allowed by the rate
	// limiter. Zero disables rate limiting.
	RateLimitRPS float64 `koanf:"rate_limit_rps" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// ConnMaxLifetime and ConnMaxIdleTime are whole seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL for this database.
//
// The password is URL-escaped so characters like ':' or '@' do not break
// the URL structure.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds credentials for third-party services.
//
// An empty ResendAPIKey leaves the email client unconfigured; welcome
// email jobs then fail and are retried by the job queue.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

		// List values are comma separated.
		if key == "server.cors_allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	if mainConfig.Integration.EmailFrom == "" {
		mainConfig.Integration.EmailFrom = "Customers <onboarding@resend.dev>"
	}

	return mainConfig, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
